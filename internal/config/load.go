package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

// Loader builds a Config from an optional YAML file, optional .env files and
// the process environment. Tests override Lookup to inject a fixed map.
type Loader struct {
	Lookup      func(string) (string, bool)
	DotEnvFiles []string
}

// Load reads the YAML file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	return Loader{DotEnvFiles: []string{".env"}}.Load(path)
}

// Load reads the YAML file at path (skipped when path is empty) and applies
// environment overrides. Real environment variables win over .env entries.
func (l Loader) Load(path string) (*Config, error) {
	lookup := l.lookup()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, errs.NotFound(path))
			}
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		expanded := os.Expand(string(data), func(key string) string {
			v, _ := lookup(key)
			return v
		})
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("%w: parse config %s: %v", errs.ErrInvalidArgument, path, err)
		}
	}

	if err := applyEnv(lookup, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l Loader) lookup() func(string) (string, bool) {
	env := l.Lookup
	if env == nil {
		env = os.LookupEnv
	}

	var dotenv map[string]string
	existing := make([]string, 0, len(l.DotEnvFiles))
	for _, f := range l.DotEnvFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if m, err := godotenv.Read(existing...); err == nil {
			dotenv = m
		}
	}

	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func applyEnv(lookup func(string) (string, bool), cfg *Config) error {
	overrideString(lookup, "SLACK_API_TOKEN", &cfg.Slack.APIToken)
	overrideString(lookup, "SLACK_CHANNEL", &cfg.Slack.Channel)
	overrideString(lookup, "OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	overrideString(lookup, "OPENAI_MODEL", &cfg.OpenAI.Model)
	overrideString(lookup, "GEMINI_API_KEY", &cfg.Gemini.APIKey)
	overrideString(lookup, "GEMINI_MODEL", &cfg.Gemini.Model)
	overrideString(lookup, "GOOGLE_APPLICATION_CREDENTIALS", &cfg.Speech.CredentialsFile)
	overrideString(lookup, "SPEECH_PROVIDER", &cfg.Speech.Provider)
	overrideString(lookup, "SPEECH_LANGUAGE", &cfg.Speech.Language)
	overrideString(lookup, "SUMMARIZER_PROVIDER", &cfg.Summarizer.Provider)
	overrideString(lookup, "WHISPER_MODEL_PATH", &cfg.Whisper.ModelPath)
	overrideString(lookup, "WHISPER_BINARY_PATH", &cfg.Whisper.BinaryPath)
	overrideString(lookup, "LOG_LEVEL", &cfg.Logging.Level)
	overrideString(lookup, "LOG_FORMAT", &cfg.Logging.Format)
	overrideString(lookup, "METRICS_ADDR", &cfg.Metrics.Addr)

	ints := []struct {
		key    string
		target *int
	}{
		{"OPENAI_MAX_TOKENS", &cfg.OpenAI.MaxTokens},
		{"AUDIO_SAMPLE_RATE", &cfg.Audio.SampleRate},
		{"AUDIO_CHANNELS", &cfg.Audio.Channels},
		{"AUDIO_CHUNK_MS", &cfg.Audio.ChunkLengthMs},
		{"SPEECH_SAMPLE_RATE", &cfg.Speech.SampleRate},
	}
	for _, o := range ints {
		if err := overrideInt(lookup, o.key, o.target); err != nil {
			return err
		}
	}

	if v, ok := lookup("DEBUG"); ok && strings.TrimSpace(v) != "" {
		cfg.Debug = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	return nil
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideInt(lookup func(string) (string, bool), key string, target *int) error {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return errs.InvalidArgument("%s must be an integer, got %q", key, value)
	}
	*target = n
	return nil
}
