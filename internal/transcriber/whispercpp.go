package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/config"
	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

type whisperCppEngine struct {
	exec executor.Executor
	cfg  config.WhisperConfig
}

// NewWhisperCppEngine runs a local whisper.cpp binary for every request.
func NewWhisperCppEngine(exec executor.Executor, cfg config.WhisperConfig) Engine {
	return &whisperCppEngine{exec: exec, cfg: cfg}
}

func (e *whisperCppEngine) Transcribe(ctx context.Context, req Request) (*Result, error) {
	dir, err := os.MkdirTemp("", "whispercpp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	audioPath := filepath.Join(dir, "input.wav")
	if err := os.WriteFile(audioPath, req.Audio, 0644); err != nil {
		return nil, fmt.Errorf("write temp audio: %w", err)
	}

	// whisper.cpp appends .txt to the output prefix
	outputPrefix := filepath.Join(dir, "transcript")

	// -otxt: plain text output
	// -l: force language (prevents hallucination)
	// -bo 5: best of 5 candidates
	args := []string{
		"-m", e.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", isoLanguage(req.LanguageCode),
		"-t", strconv.Itoa(e.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if e.cfg.Prompt != "" {
		args = append(args, "--prompt", e.cfg.Prompt)
	}

	if _, err := e.exec.Execute(ctx, e.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper.cpp transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return nil, fmt.Errorf("read whisper.cpp output: %w", err)
	}

	text := strings.Join(strings.Fields(string(data)), " ")
	if text == "" {
		return nil, nil
	}

	return &Result{
		Text:     text,
		Language: req.LanguageCode,
	}, nil
}

func (e *whisperCppEngine) Close() error { return nil }
