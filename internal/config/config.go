package config

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

const (
	DefaultChannel        = "#meeting_recordings"
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultMaxTokens      = 500
	DefaultSampleRate     = 44100
	DefaultChannels       = 2
	DefaultChunkLengthMs  = 60000
	DefaultSpeechRate     = 16000
	DefaultLanguage       = "en-US"
	DefaultSpeechProvider = "google"
	DefaultLLMProvider    = "openai"
)

type Config struct {
	Slack       SlackConfig       `yaml:"slack"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Speech      SpeechConfig      `yaml:"speech"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Audio       AudioConfig       `yaml:"audio"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Debug       bool              `yaml:"debug"`
}

type SlackConfig struct {
	APIToken string `yaml:"api_token"`
	Channel  string `yaml:"channel"`
}

type OpenAIConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// SpeechConfig selects the transcription engine: google, whisper or whispercpp.
type SpeechConfig struct {
	Provider        string `yaml:"provider"`
	Language        string `yaml:"language"`
	SampleRate      int    `yaml:"sample_rate"`
	CredentialsFile string `yaml:"credentials_file"`
}

// WhisperConfig drives the local whisper.cpp binary.
type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

// SummarizerConfig selects the language model backend: openai or gemini.
type SummarizerConfig struct {
	Provider string `yaml:"provider"`
}

type AudioConfig struct {
	SampleRate    int `yaml:"sample_rate"`
	Channels      int `yaml:"channels"`
	ChunkLengthMs int `yaml:"chunk_length_ms"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate fills defaults and rejects malformed values.
func (c *Config) Validate() error {
	if c.Slack.Channel == "" {
		c.Slack.Channel = DefaultChannel
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultOpenAIModel
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = DefaultMaxTokens
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	if c.Speech.Provider == "" {
		c.Speech.Provider = DefaultSpeechProvider
	}
	if c.Speech.Language == "" {
		c.Speech.Language = DefaultLanguage
	}
	if c.Speech.SampleRate == 0 {
		c.Speech.SampleRate = DefaultSpeechRate
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = DefaultLLMProvider
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = DefaultSampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = DefaultChannels
	}
	if c.Audio.ChunkLengthMs == 0 {
		c.Audio.ChunkLengthMs = DefaultChunkLengthMs
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Debug {
		c.Logging.Level = "debug"
	}

	if c.OpenAI.MaxTokens < 0 {
		return errs.InvalidArgument("openai.max_tokens must be positive, got %d", c.OpenAI.MaxTokens)
	}
	if c.Audio.ChunkLengthMs < 0 {
		return errs.InvalidArgument("audio.chunk_length_ms must be positive, got %d", c.Audio.ChunkLengthMs)
	}
	if c.Audio.SampleRate < 0 || c.Speech.SampleRate < 0 {
		return errs.InvalidArgument("sample rates must be positive")
	}
	if c.Audio.Channels < 0 {
		return errs.InvalidArgument("audio.channels must be positive, got %d", c.Audio.Channels)
	}
	if c.Performance.MaxConcurrent < 0 {
		return errs.InvalidArgument("performance.max_concurrent must be positive, got %d", c.Performance.MaxConcurrent)
	}

	switch c.Speech.Provider {
	case "google", "whisper", "whispercpp":
	default:
		return errs.InvalidArgument("speech.provider %q is not one of google, whisper, whispercpp", c.Speech.Provider)
	}
	switch c.Summarizer.Provider {
	case "openai", "gemini":
	default:
		return errs.InvalidArgument("summarizer.provider %q is not one of openai, gemini", c.Summarizer.Provider)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return errs.InvalidArgument("logging.format %q is not one of text, json", c.Logging.Format)
	}

	return nil
}

// Missing lists the credentials the selected providers still need.
// The order is stable: messaging, language model, speech.
func (c *Config) Missing() []string {
	return c.MissingFor(true, true, true)
}

// MissingFor is Missing restricted to the stages a command runs.
func (c *Config) MissingFor(slack, summarizer, speech bool) []string {
	var missing []string

	if slack && c.Slack.APIToken == "" {
		missing = append(missing, "SLACK_API_TOKEN is required")
	}

	openAIReported := false
	if summarizer {
		switch c.Summarizer.Provider {
		case "gemini":
			if c.Gemini.APIKey == "" {
				missing = append(missing, "GEMINI_API_KEY is required")
			}
		default:
			if c.OpenAI.APIKey == "" {
				missing = append(missing, "OPENAI_API_KEY is required")
				openAIReported = true
			}
		}
	}

	if speech {
		switch c.Speech.Provider {
		case "whisper":
			if c.OpenAI.APIKey == "" && !openAIReported {
				missing = append(missing, "OPENAI_API_KEY is required for whisper transcription")
			}
		case "whispercpp":
			if c.Whisper.ModelPath == "" {
				missing = append(missing, "whisper.model_path is required")
			}
			if c.Whisper.BinaryPath == "" {
				missing = append(missing, "whisper.binary_path is required")
			}
		default:
			if c.Speech.CredentialsFile == "" {
				missing = append(missing, "GOOGLE_APPLICATION_CREDENTIALS is required")
			}
		}
	}

	return missing
}

// MissingError folds Missing into a single error, nil when nothing is missing.
func (c *Config) MissingError() error {
	missing := c.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", errs.ErrInvalidArgument, strings.Join(missing, "; "))
}
