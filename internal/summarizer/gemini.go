package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// Summarize sends the transcript piece to Gemini with the system prompt as
// system instruction and returns the text parts of the first candidate.
func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.cfg.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(s.cfg.MaxOutputTokens),
	}
	if s.cfg.Temperature != 0 {
		genCfg.Temperature = genai.Ptr(s.cfg.Temperature)
	}

	s.logger.Debug(ctx, "Requesting summary from %s (%d characters)", s.cfg.Model, len(text))

	result, err := s.client.Models.GenerateContent(ctx, s.cfg.Model, genai.Text(text), genCfg)
	if err != nil {
		return "", serviceError(ctx, "generate content", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		if summary := strings.TrimSpace(sb.String()); summary != "" {
			return summary, nil
		}
	}

	return "", serviceError(ctx, "generate content", errors.New("empty response from Gemini"))
}

func serviceError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return apperr.ExternalService(op, err)
}
