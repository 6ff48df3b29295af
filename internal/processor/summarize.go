package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/output"
	"github.com/nguyentantai21042004/lecture-digest/internal/textsplit"
)

// summarizeText cuts text into token-bounded pieces, stores them under the
// split text dir and summarizes each into the lecture's artifact.
func (p *implProcessor) summarizeText(ctx context.Context, name, source, text string) (Result, error) {
	res := Result{Source: source}

	pieces := textsplit.Split(text, p.cfg.Split.MaxTokens)
	if _, err := output.WriteSegments(p.cfg.Paths.SplitText, name, pieces); err != nil {
		return res, fmt.Errorf("write text segments: %w", err)
	}
	res.TextSegments = len(pieces)

	if len(pieces) == 0 {
		p.logger.Warn(ctx, "Transcript has no words, writing an empty summary")
	} else {
		p.logger.Info(ctx, "Transcript split into %d segments of up to %d tokens", len(pieces), p.cfg.Split.MaxTokens)
	}

	artifact, err := p.writer.Create(p.cfg.Paths.Output, name, output.Header{
		Title:     name,
		Source:    source,
		RunID:     p.runID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return res, fmt.Errorf("create summary: %w", err)
	}
	res.SummaryPath = artifact.Path()

	for i, piece := range pieces {
		pieceCtx := logger.WithFields(ctx, "part", i+1)
		p.logger.Info(pieceCtx, "Summarizing text segment %d/%d", i+1, len(pieces))

		summary, err := p.summarizer.Summarize(pieceCtx, piece)
		if err != nil {
			p.closeArtifact(ctx, artifact)
			return res, fmt.Errorf("summarize segment %d: %w", i, err)
		}
		if err := artifact.AddSection(fmt.Sprintf("Part %d", i+1), summary); err != nil {
			p.closeArtifact(ctx, artifact)
			return res, fmt.Errorf("append summary %d: %w", i, err)
		}
	}

	if err := artifact.Close(); err != nil {
		return res, fmt.Errorf("close summary: %w", err)
	}
	return res, nil
}

// closeArtifact keeps whatever was summarized before a failure.
func (p *implProcessor) closeArtifact(ctx context.Context, a output.Artifact) {
	if err := a.Close(); err != nil {
		p.logger.Warn(ctx, "Failed to close partial summary %s: %v", a.Path(), err)
	}
}
