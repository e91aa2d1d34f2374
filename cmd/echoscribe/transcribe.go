package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
)

func newTranscribeCmd() *cobra.Command {
	var (
		output   string
		language string
		chunkMs  int
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio_file>",
		Short: "Transcribe an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if language != "" {
				a.cfg.Speech.Language = language
			}
			if err := a.requireCredentials(stages{transcribe: true}); err != nil {
				return err
			}

			pipe, err := a.pipeline(ctx, stages{transcribe: true}, nil)
			if err != nil {
				return err
			}

			res, err := pipe.Transcribe(ctx, args[0], pipeline.Options{ChunkMs: chunkMs})
			if err != nil {
				return err
			}

			if err := writeTranscript(cmd, res.Transcript.Text, output); err != nil {
				return err
			}
			if output != "" {
				a.log.Info(ctx, "Transcript saved to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the transcript to this file")
	cmd.Flags().StringVarP(&language, "language", "l", "", "BCP-47 language code (default from config)")
	cmd.Flags().IntVar(&chunkMs, "chunk-ms", 0, "chunk length in milliseconds (default from config)")
	return cmd
}

// writeTranscript prints text, or saves it to output when set. An empty
// transcript is an error so the command exits non-zero without creating
// output.
func writeTranscript(cmd *cobra.Command, text, output string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("no transcription available: %w", errs.ErrEmptyInput)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
