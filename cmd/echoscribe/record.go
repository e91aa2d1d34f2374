package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/echoscribe/internal/pipeline"
	"github.com/nguyentantai21042004/echoscribe/internal/recorder"
)

func newRecordCmd() *cobra.Command {
	var (
		duration time.Duration
		process  bool
		noSlack  bool
		channel  string
	)

	cmd := &cobra.Command{
		Use:   "record <out.wav>",
		Short: "Record a meeting from the default microphone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			s := stages{transcribe: true, summarize: true, publish: process && !noSlack}
			if process {
				if err := a.requireCredentials(s); err != nil {
					return err
				}
			}

			// Ctrl+C stops the capture; processing gets a fresh context so it
			// still runs afterwards.
			rec := recorder.New(recorder.NewMicrophone(), recorder.Options{
				SampleRate:  a.cfg.Audio.SampleRate,
				Channels:    a.cfg.Audio.Channels,
				MaxDuration: duration,
			}, a.log)
			recording, err := rec.Record(ctx, args[0])
			if err != nil {
				return err
			}

			if !process {
				return nil
			}

			pctx := context.WithoutCancel(ctx)
			pipe, err := a.pipeline(pctx, s, nil)
			if err != nil {
				return err
			}
			res, err := pipe.Process(pctx, recording.Path, pipeline.Options{
				Publish:      s.publish,
				Channel:      channel,
				OnTransition: a.progress(pctx),
			})
			printResult(cmd, res)
			return err
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (default: until Ctrl+C)")
	cmd.Flags().BoolVar(&process, "process", false, "process the recording when it stops")
	cmd.Flags().BoolVar(&noSlack, "no-slack", false, "do not post to Slack when processing")
	cmd.Flags().StringVarP(&channel, "channel", "c", "", "Slack channel (default from config)")
	return cmd
}
