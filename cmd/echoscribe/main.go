package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "echoscribe",
		Short:         "Transcribe meeting recordings, summarize them and post the notes to Slack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")

	root.AddCommand(
		newTranscribeCmd(),
		newSummarizeCmd(),
		newProcessCmd(),
		newCheckConfigCmd(),
		newWatchCmd(),
		newRecordCmd(),
	)
	return root
}
