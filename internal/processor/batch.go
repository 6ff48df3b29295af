package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/media"
)

// Err joins the failures of the report, or returns nil.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(f.Source), f.Err))
	}
	return errors.Join(errs...)
}

// RunBatch implements Processor.
func (p *implProcessor) RunBatch(ctx context.Context, videos []string) (Report, error) {
	if len(videos) == 0 {
		p.logger.Info(ctx, "No lecture videos to process")
		return Report{}, nil
	}
	p.logger.Info(ctx, "Processing %d lecture videos (failure policy: %s)", len(videos), p.cfg.Pipeline.FailurePolicy)
	return p.runEach(ctx, videos, p.Process)
}

// SummarizeTranscripts implements Processor.
func (p *implProcessor) SummarizeTranscripts(ctx context.Context, dir string) (Report, error) {
	files, err := discoverTranscripts(dir)
	if err != nil {
		return Report{}, apperr.Filesystem("discover transcripts", err)
	}
	if len(files) == 0 {
		p.logger.Info(ctx, "No transcripts found in %s", dir)
		return Report{}, nil
	}

	p.logger.Info(ctx, "Found %d transcripts to summarize", len(files))
	return p.runEach(ctx, files, func(ctx context.Context, path string) (Result, error) {
		name := strings.TrimSuffix(filepath.Base(path), transcriptSuffix)
		ctx = logger.WithFields(ctx, "transcript", filepath.Base(path))

		content, err := os.ReadFile(path)
		if err != nil {
			return Result{Source: path}, apperr.Filesystem("read transcript", err)
		}
		res, err := p.summarizeText(ctx, name, path, string(content))
		res.TranscriptPath = path
		if err == nil {
			p.logger.Info(ctx, "[DONE] %s -> %s", name, res.SummaryPath)
		}
		return res, err
	})
}

// runEach applies fn to items in order. Under the abort policy the first
// failure stops the batch; under continue it is recorded and the rest run.
func (p *implProcessor) runEach(ctx context.Context, items []string, fn func(context.Context, string) (Result, error)) (Report, error) {
	var report Report

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(items), item)
		res, err := fn(ctx, item)
		if p.onItemDone != nil {
			p.onItemDone(item, err)
		}

		if err != nil {
			report.Failures = append(report.Failures, Failure{Source: item, Err: err})
			p.logger.Error(ctx, "Failed to process %s: %v", item, err)

			if p.cfg.Pipeline.FailurePolicy != config.FailureContinue || ctx.Err() != nil {
				return report, report.Err()
			}
			continue
		}
		report.Results = append(report.Results, res)
	}

	p.logger.Info(ctx, "Batch complete: %d success, %d failed", len(report.Results), len(report.Failures))
	return report, report.Err()
}

// DiscoverVideos returns the supported video files directly inside dir, sorted by name.
func DiscoverVideos(dir string) ([]string, error) {
	return discover(dir, media.IsVideoFile)
}

func discoverTranscripts(dir string) ([]string, error) {
	return discover(dir, func(name string) bool {
		return strings.HasSuffix(name, transcriptSuffix)
	})
}

func discover(dir string, match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
