package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Summarize sends the system prompt and the transcript piece as a two message
// conversation and returns the first choice.
func (s *openAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.cfg.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxOutputTokens,
	}

	s.logger.Debug(ctx, "Requesting summary from %s (%d characters)", s.cfg.Model, len(text))

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", serviceError(ctx, "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", serviceError(ctx, "chat completion", errors.New("response has no choices"))
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", serviceError(ctx, "chat completion", fmt.Errorf("empty summary (finish reason %q)", resp.Choices[0].FinishReason))
	}
	return summary, nil
}
