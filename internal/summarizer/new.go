package summarizer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
)

type openAISummarizer struct {
	client *openai.Client
	cfg    config.SummarizationConfig
	logger logger.Logger
}

// NewOpenAI creates a Summarizer backed by the OpenAI chat completions API.
func NewOpenAI(client *openai.Client, cfg config.SummarizationConfig, log logger.Logger) Summarizer {
	return &openAISummarizer{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

type geminiSummarizer struct {
	client *genai.Client
	cfg    config.SummarizationConfig
	logger logger.Logger
}

// NewGemini creates a Summarizer backed by the Gemini API.
func NewGemini(ctx context.Context, gemini config.GeminiConfig, cfg config.SummarizationConfig, log logger.Logger) (Summarizer, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if gemini.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: gemini.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, apperr.Configuration("create gemini client", fmt.Errorf("create client: %w", err))
	}

	return &geminiSummarizer{
		client: client,
		cfg:    cfg,
		logger: log,
	}, nil
}
