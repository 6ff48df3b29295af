package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
)

// Process orchestrates the entire lecture pipeline
func (p *implProcessor) Process(ctx context.Context, videoPath string) (Result, error) {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	ctx = logger.WithFields(ctx, "run", p.runID[:8], "video", filepath.Base(videoPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting lecture processing: %s", videoPath)
	p.logger.Info(ctx, "========================================")

	// Step 1-3: Extract, split and transcribe audio
	transcript, audioSegments, err := p.transcribeVideo(ctx, videoPath)
	if err != nil {
		return Result{Source: videoPath}, err
	}

	// Step 4: Persist the transcript
	transcriptPath, err := p.writeTranscript(ctx, name, transcript)
	if err != nil {
		return Result{Source: videoPath}, fmt.Errorf("write transcript: %w", err)
	}

	// Step 5-6: Chunk and summarize
	res, err := p.summarizeText(ctx, name, videoPath, transcript.Text)
	res.AudioSegments = audioSegments
	res.TranscriptPath = transcriptPath
	if err != nil {
		return res, err
	}

	// Step 7: Move original video to archived folder
	if p.cfg.Pipeline.ArchiveProcessed {
		if err := p.moveToArchived(ctx, videoPath); err != nil {
			p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
		}
	}

	res.Elapsed = time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Transcript: %s", res.TranscriptPath)
	p.logger.Info(ctx, "Summary: %s", res.SummaryPath)
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")

	return res, nil
}
