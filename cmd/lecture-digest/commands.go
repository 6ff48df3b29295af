package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/processor"
	"github.com/nguyentantai21042004/lecture-digest/internal/watcher"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		failurePolicy string
		progress      bool
	)

	cmd := &cobra.Command{
		Use:   "run [video...]",
		Short: "Process the given videos, or every video in the lectures folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if failurePolicy != "" {
				a.cfg.Pipeline.FailurePolicy = failurePolicy
				if err := a.cfg.Validate(); err != nil {
					return apperr.Configuration("failure policy", err)
				}
			}
			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}

			videos := args
			if len(videos) == 0 {
				found, err := processor.DiscoverVideos(a.cfg.Paths.Lectures)
				if err != nil {
					return apperr.Filesystem("discover videos", err)
				}
				videos = found
			}

			var onItemDone func(string, error)
			if progress && len(videos) > 0 {
				bar := progressbar.NewOptions(
					len(videos),
					progressbar.OptionSetDescription("lectures"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				onItemDone = func(source string, err error) {
					bar.Describe(filepath.Base(source))
					if err := bar.Add(1); err != nil {
						a.log.Warn(ctx, "Failed to update progress bar: %v", err)
					}
				}
			}

			proc, err := a.newProcessor(ctx, onItemDone)
			if err != nil {
				return err
			}

			report, err := proc.RunBatch(ctx, videos)
			printReport(cmd, report)
			return err
		},
	}

	cmd.Flags().StringVar(&failurePolicy, "failure-policy", "", "Override pipeline.failure_policy (abort or continue)")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process new videos as they appear in the lectures folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}

			proc, err := a.newProcessor(ctx, nil)
			if err != nil {
				return err
			}

			w, err := watcher.New(a.cfg.Paths.Lectures, func(ctx context.Context, path string) error {
				_, err := proc.Process(ctx, path)
				return err
			}, a.log)
			if err != nil {
				return err
			}
			defer w.Stop()

			a.log.Info(ctx, "========================================")
			a.log.Info(ctx, "Lecture pipeline is ready!")
			a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Lectures)
			a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
			a.log.Info(ctx, "Transcription: %s (%s)", a.cfg.Transcription.Provider, a.cfg.Transcription.Model)
			a.log.Info(ctx, "Summarization: %s (%s)", a.cfg.Summarization.Provider, a.cfg.Summarization.Model)
			a.log.Info(ctx, "Press Ctrl+C to stop")
			a.log.Info(ctx, "========================================")

			err = w.Start(ctx)
			if ctx.Err() != nil {
				a.log.Info(context.Background(), "Lecture pipeline stopped")
				return nil
			}
			return err
		},
	}
}

func newSummarizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Re-summarize the transcripts already in the output folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := ensureDirectories(a.cfg); err != nil {
				return err
			}

			proc, err := a.newSummaryOnlyProcessor(ctx)
			if err != nil {
				return err
			}

			report, err := proc.SummarizeTranscripts(ctx, a.cfg.Paths.Output)
			printReport(cmd, report)
			return err
		},
	}
}

func printReport(cmd *cobra.Command, report processor.Report) {
	out := cmd.OutOrStdout()
	for _, r := range report.Results {
		fmt.Fprintf(out, "ok     %s -> %s (%d audio, %d text segments)\n",
			filepath.Base(r.Source), r.SummaryPath, r.AudioSegments, r.TextSegments)
	}
	for _, f := range report.Failures {
		fmt.Fprintf(out, "failed %s: %v\n", filepath.Base(f.Source), f.Err)
	}
}
