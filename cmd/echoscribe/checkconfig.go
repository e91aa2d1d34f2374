package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate configuration and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			cfg := a.cfg
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Speech provider:     %s (%s, %d Hz)\n", cfg.Speech.Provider, cfg.Speech.Language, cfg.Speech.SampleRate)
			fmt.Fprintf(out, "Summarizer provider: %s\n", cfg.Summarizer.Provider)
			fmt.Fprintf(out, "Slack channel:       %s\n", cfg.Slack.Channel)
			fmt.Fprintf(out, "Chunk length:        %d ms\n", cfg.Audio.ChunkLengthMs)
			fmt.Fprintf(out, "ffmpeg available:    %t\n", a.exec.Available(cfg.FFmpeg.BinaryPath))

			missing := cfg.Missing()
			if len(missing) > 0 {
				fmt.Fprintln(out, "\nConfiguration errors:")
				for _, m := range missing {
					fmt.Fprintf(out, "  - %s\n", m)
				}
				return cfg.MissingError()
			}

			fmt.Fprintln(out, "\nConfiguration is valid")
			return nil
		},
	}
}
