package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/media"
	"github.com/nguyentantai21042004/lecture-digest/internal/processor"
	"github.com/nguyentantai21042004/lecture-digest/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-digest/internal/transcribe"
	"github.com/nguyentantai21042004/lecture-digest/pkg/executor"
)

// app holds what every command shares once flags are parsed.
type app struct {
	configPath string
	envFiles   []string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(a.envFiles...); err != nil {
		return err
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// loadConfig falls back to defaults when the default config file is absent.
// A config path given explicitly must exist.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(a.configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.Default(), nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, apperr.Configuration("load config", err)
	}
	return cfg, nil
}

// newProcessor wires the configured backends. Credentials and external tools
// are checked here so a misconfigured run fails before any work starts.
func (a *app) newProcessor(ctx context.Context, onItemDone func(string, error)) (processor.Processor, error) {
	if err := a.cfg.ResolveCredentials(os.LookupEnv); err != nil {
		return nil, err
	}

	exec := executor.New()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, apperr.Configuration("find ffmpeg", err)
	}

	var openaiClient *openai.Client
	if a.cfg.NeedsOpenAI() {
		openaiClient = newOpenAIClient(a.cfg.OpenAI)
	}

	var tr transcribe.Transcriber
	switch a.cfg.Transcription.Provider {
	case config.ProviderWhisper:
		if _, err := exec.LookPath(a.cfg.Whisper.BinaryPath); err != nil {
			return nil, apperr.Configuration("find whisper binary", err)
		}
		tr = transcribe.NewWhisper(a.cfg.Whisper, a.cfg.Transcription, exec, a.log)
	default:
		tr = transcribe.NewOpenAI(openaiClient, a.cfg.Transcription, a.log)
	}

	sum, err := a.newSummarizer(ctx, openaiClient)
	if err != nil {
		return nil, err
	}

	return processor.New(a.cfg, a.log, processor.Deps{
		Extractor:   media.NewExtractor(a.cfg.Audio, exec, a.log),
		Splitter:    media.NewSplitter(exec, a.log),
		Transcriber: tr,
		Summarizer:  sum,
		OnItemDone:  onItemDone,
	}), nil
}

func (a *app) newSummarizer(ctx context.Context, openaiClient *openai.Client) (summarizer.Summarizer, error) {
	if a.cfg.Summarization.Provider == config.ProviderGemini {
		return summarizer.NewGemini(ctx, a.cfg.Gemini, a.cfg.Summarization, a.log)
	}
	return summarizer.NewOpenAI(openaiClient, a.cfg.Summarization, a.log), nil
}

// newSummaryOnlyProcessor wires just the summarizer, for re-summarizing
// transcripts that already exist.
func (a *app) newSummaryOnlyProcessor(ctx context.Context) (processor.Processor, error) {
	if err := a.cfg.ResolveSummarizerCredentials(os.LookupEnv); err != nil {
		return nil, err
	}

	var openaiClient *openai.Client
	if a.cfg.Summarization.Provider == config.ProviderOpenAI {
		openaiClient = newOpenAIClient(a.cfg.OpenAI)
	}
	sum, err := a.newSummarizer(ctx, openaiClient)
	if err != nil {
		return nil, err
	}
	return processor.New(a.cfg, a.log, processor.Deps{Summarizer: sum}), nil
}

func newOpenAIClient(cfg config.OpenAIConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.TimeoutSeconds > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	return openai.NewClientWithConfig(clientCfg)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Lectures,
		cfg.Paths.Audio,
		cfg.Paths.SplitText,
		cfg.Paths.Output,
	}
	if cfg.Pipeline.ArchiveProcessed {
		dirs = append(dirs, cfg.Paths.Archived)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperr.Filesystem(fmt.Sprintf("create directory %s", dir), err)
		}
	}

	return nil
}
