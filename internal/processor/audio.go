package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/media"
	"github.com/nguyentantai21042004/lecture-digest/internal/output"
	"github.com/nguyentantai21042004/lecture-digest/internal/transcribe"
)

// transcribeVideo extracts the audio track, splits it to fit the upload
// limit and transcribes each piece in order.
func (p *implProcessor) transcribeVideo(ctx context.Context, videoPath string) (transcribe.Transcript, int, error) {
	audioPath, err := p.extractor.Extract(ctx, videoPath, p.cfg.Paths.Audio)
	if err != nil {
		return transcribe.Transcript{}, 0, fmt.Errorf("extract audio: %w", err)
	}

	segments, err := p.splitter.Split(ctx, audioPath, media.SplitOptions{
		SizeThresholdBytes: p.cfg.Split.SizeThresholdBytes,
		Window:             time.Duration(p.cfg.Split.WindowSeconds) * time.Second,
	})
	if err != nil {
		return transcribe.Transcript{}, 0, fmt.Errorf("split audio: %w", err)
	}

	parts := make([]transcribe.Transcript, 0, len(segments))
	offsets := make([]time.Duration, 0, len(segments))
	for _, seg := range segments {
		segCtx := logger.WithFields(ctx, "segment", seg.Index)
		p.logger.Info(segCtx, "Transcribing audio segment %d/%d: %s", seg.Index+1, len(segments), seg.Path)

		t, err := p.transcriber.Transcribe(segCtx, seg.Path)
		if err != nil {
			return transcribe.Transcript{}, 0, fmt.Errorf("transcribe segment %d: %w", seg.Index, err)
		}
		parts = append(parts, t)
		offsets = append(offsets, seg.Start)

		if p.cfg.Audio.CleanupSegments {
			p.cleanupTempFile(segCtx, seg.Path)
		}
	}

	return transcribe.Merge(parts, offsets), len(segments), nil
}

// writeTranscript stores the merged transcript next to the summaries. The
// text file is what the summarize command reads back later.
func (p *implProcessor) writeTranscript(ctx context.Context, name string, t transcribe.Transcript) (string, error) {
	txtPath := transcriptPath(p.cfg.Paths.Output, name)
	if err := output.WriteText(txtPath, t.Text+"\n"); err != nil {
		return "", err
	}

	if t.Structured() {
		jsonPath := filepath.Join(p.cfg.Paths.Output, name+"_transcript.json")
		if err := output.WriteJSON(jsonPath, t); err != nil {
			return "", err
		}
		p.logger.Debug(ctx, "Structured transcript written: %s", jsonPath)
	}

	if p.cfg.Output.Format == config.OutputDocx {
		lines := []string{t.Text}
		if len(t.Segments) > 0 {
			lines = lines[:0]
			for _, s := range t.Segments {
				lines = append(lines, s.Text)
			}
		}
		docxPath := filepath.Join(p.cfg.Paths.Output, name+"_transcript.docx")
		if err := output.WriteTranscriptDocx(name, lines, docxPath); err != nil {
			return "", err
		}
	}

	p.logger.Info(ctx, "Transcript written: %s (%d characters)", txtPath, len(t.Text))
	return txtPath, nil
}

const transcriptSuffix = "_transcript.txt"

func transcriptPath(dir, name string) string {
	return filepath.Join(dir, name+transcriptSuffix)
}
