package main

import (
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
)

func newProcessCmd() *cobra.Command {
	var (
		slack    bool
		noSlack  bool
		channel  string
		threadTS string
		docxPath string
		chunkMs  int
		keep     bool
	)

	cmd := &cobra.Command{
		Use:   "process <audio_file>",
		Short: "Transcribe, summarize and post a meeting recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			publish := slack && !noSlack

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			s := stages{transcribe: true, summarize: true, publish: publish}
			if err := a.requireCredentials(s); err != nil {
				return err
			}

			pipe, err := a.pipeline(ctx, s, nil)
			if err != nil {
				return err
			}

			res, err := pipe.Process(ctx, args[0], pipeline.Options{
				ChunkMs:      chunkMs,
				Publish:      publish,
				Channel:      channel,
				ThreadTS:     threadTS,
				DocxPath:     docxPath,
				KeepChunks:   keep,
				OnTransition: a.progress(ctx),
			})
			printResult(cmd, res)
			return err
		},
	}

	cmd.Flags().BoolVar(&slack, "slack", true, "post the summary to Slack")
	cmd.Flags().BoolVar(&noSlack, "no-slack", false, "do not post to Slack")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Slack channel (default from config)")
	cmd.Flags().StringVar(&threadTS, "thread", "", "reply in this Slack thread")
	cmd.Flags().StringVar(&docxPath, "docx", "", "also write the notes to this .docx file")
	cmd.Flags().IntVar(&chunkMs, "chunk-ms", 0, "chunk length in milliseconds (default from config)")
	cmd.Flags().BoolVar(&keep, "keep-chunks", false, "keep the chunk files after the run")
	return cmd
}
