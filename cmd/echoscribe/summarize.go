package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
)

func newSummarizeCmd() *cobra.Command {
	var (
		slack    bool
		channel  string
		threadTS string
		docxPath string
	)

	cmd := &cobra.Command{
		Use:   "summarize <transcript_file>",
		Short: "Summarize a transcript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			s := stages{summarize: true, publish: slack}
			if err := a.requireCredentials(s); err != nil {
				return err
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			pipe, err := a.pipeline(ctx, s, nil)
			if err != nil {
				return err
			}

			res, err := pipe.SummarizeText(ctx, string(text), pipeline.Options{
				Publish:      slack,
				Channel:      channel,
				ThreadTS:     threadTS,
				DocxPath:     docxPath,
				OnTransition: a.progress(ctx),
			})
			printResult(cmd, res)
			return err
		},
	}

	cmd.Flags().BoolVar(&slack, "slack", false, "post the summary to Slack")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Slack channel (default from config)")
	cmd.Flags().StringVar(&threadTS, "thread", "", "reply in this Slack thread")
	cmd.Flags().StringVar(&docxPath, "docx", "", "also write the notes to this .docx file")
	return cmd
}

// printResult writes whatever the run produced, including the summary of a
// run that failed while publishing.
func printResult(cmd *cobra.Command, res *pipeline.Result) {
	if res == nil {
		return
	}
	out := cmd.OutOrStdout()

	if res.Message != "" {
		fmt.Fprintln(out, res.Message)
	}
	if res.DocxPath != "" {
		fmt.Fprintf(out, "\nNotes written to %s\n", res.DocxPath)
	}
	if res.Receipt != nil {
		fmt.Fprintf(out, "\nPosted to %s (ts %s)\n", res.Receipt.Channel, res.Receipt.Timestamp)
	}
}
