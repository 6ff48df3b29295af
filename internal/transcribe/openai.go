package transcribe

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
)

type openAITranscriber struct {
	client *openai.Client
	cfg    config.TranscriptionConfig
	logger logger.Logger
}

// NewOpenAI creates a Transcriber backed by the OpenAI audio transcription API.
func NewOpenAI(client *openai.Client, cfg config.TranscriptionConfig, log logger.Logger) Transcriber {
	return &openAITranscriber{client: client, cfg: cfg, logger: log}
}

func (o *openAITranscriber) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	format := openai.AudioResponseFormatJSON
	if o.cfg.ResponseFormat == "verbose_json" {
		format = openai.AudioResponseFormatVerboseJSON
	}

	o.logger.Info(ctx, "Transcribing with %s: %s", o.cfg.Model, audioPath)

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: audioPath,
		Prompt:   o.cfg.Prompt,
		Language: o.cfg.Language,
		Format:   format,
	})
	if err != nil {
		return Transcript{}, serviceError(ctx, "transcribe "+filepath.Base(audioPath), err)
	}

	t := Transcript{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}
	for _, s := range resp.Segments {
		t.Segments = append(t.Segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}

	o.logger.Debug(ctx, "Transcription returned %d characters, %d timed segments", len(t.Text), len(t.Segments))
	return t, nil
}

func serviceError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return apperr.ExternalService(op, err)
}
