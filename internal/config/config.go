package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Audio         AudioConfig         `yaml:"audio"`
	Split         SplitConfig         `yaml:"split"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summarization SummarizationConfig `yaml:"summarization"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Whisper       WhisperConfig       `yaml:"whisper"`
	Output        OutputConfig        `yaml:"output"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type PathsConfig struct {
	Lectures  string `yaml:"lectures"`
	Audio     string `yaml:"audio"`
	SplitText string `yaml:"split_text"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
}

type AudioConfig struct {
	Format          string `yaml:"format"`
	SampleRate      int    `yaml:"sample_rate"`
	Channels        int    `yaml:"channels"`
	Bitrate         string `yaml:"bitrate"`
	CleanupSegments bool   `yaml:"cleanup_segments"`
}

type SplitConfig struct {
	SizeThresholdBytes int64 `yaml:"size_threshold_bytes"`
	WindowSeconds      int   `yaml:"window_seconds"`
	MaxTokens          int   `yaml:"max_tokens"`
}

type TranscriptionConfig struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	Language       string `yaml:"language"`
	Prompt         string `yaml:"prompt"`
	ResponseFormat string `yaml:"response_format"`
}

type SummarizationConfig struct {
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	SystemPrompt    string  `yaml:"system_prompt"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

type OpenAIConfig struct {
	APIKeyEnv      string `yaml:"api_key_env"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	APIKey string `yaml:"-"`
}

type GeminiConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`

	APIKey string `yaml:"-"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type PipelineConfig struct {
	FailurePolicy    string `yaml:"failure_policy"`
	ArchiveProcessed bool   `yaml:"archive_processed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderWhisper = "whisper"

	FailureAbort    = "abort"
	FailureContinue = "continue"

	OutputMarkdown = "markdown"
	OutputDocx     = "docx"

	DefaultSizeThresholdBytes = 25 * 1024 * 1024
	DefaultWindowSeconds      = 20 * 60
	DefaultMaxTokens          = 2000

	DefaultSystemPrompt = "You are a teaching assistant. Summarize the following part of a lecture transcript. " +
		"Keep the key concepts, definitions, examples and any announcements, in the order they appear. " +
		"Use short markdown headings and bullet points."
)

// Load reads a YAML config file and applies defaults for every field it leaves out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a validated config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Validate fills unset fields with defaults and rejects unknown enum values.
func (c *Config) Validate() error {
	if c.Paths.Lectures == "" {
		c.Paths.Lectures = "Lectures"
	}
	if c.Paths.Audio == "" {
		c.Paths.Audio = "Audio"
	}
	if c.Paths.SplitText == "" {
		c.Paths.SplitText = "SplitText"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "Output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "Archived"
	}

	if c.Audio.Format == "" {
		c.Audio.Format = "mp3"
	}
	if c.Audio.Format != "mp3" && c.Audio.Format != "wav" {
		return fmt.Errorf("audio.format must be mp3 or wav, got %q", c.Audio.Format)
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Audio.Bitrate == "" && c.Audio.Format == "mp3" {
		c.Audio.Bitrate = "64k"
	}

	if c.Split.SizeThresholdBytes == 0 {
		c.Split.SizeThresholdBytes = DefaultSizeThresholdBytes
	}
	if c.Split.SizeThresholdBytes < 0 {
		return fmt.Errorf("split.size_threshold_bytes must be positive")
	}
	if c.Split.WindowSeconds == 0 {
		c.Split.WindowSeconds = DefaultWindowSeconds
	}
	if c.Split.WindowSeconds < 0 {
		return fmt.Errorf("split.window_seconds must be positive")
	}
	if c.Split.MaxTokens == 0 {
		c.Split.MaxTokens = DefaultMaxTokens
	}
	if c.Split.MaxTokens < 0 {
		return fmt.Errorf("split.max_tokens must be positive")
	}

	if c.Transcription.Provider == "" {
		c.Transcription.Provider = ProviderOpenAI
	}
	switch c.Transcription.Provider {
	case ProviderOpenAI:
		if c.Transcription.Model == "" {
			c.Transcription.Model = "whisper-1"
		}
	case ProviderWhisper:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required for the whisper provider")
		}
		if c.Whisper.BinaryPath == "" {
			c.Whisper.BinaryPath = "whisper-cli"
		}
		if c.Whisper.Threads == 0 {
			c.Whisper.Threads = 8
		}
	default:
		return fmt.Errorf("transcription.provider must be openai or whisper, got %q", c.Transcription.Provider)
	}
	if c.Transcription.ResponseFormat == "" {
		c.Transcription.ResponseFormat = "json"
	}
	if c.Transcription.ResponseFormat != "json" && c.Transcription.ResponseFormat != "verbose_json" {
		return fmt.Errorf("transcription.response_format must be json or verbose_json, got %q", c.Transcription.ResponseFormat)
	}

	if c.Summarization.Provider == "" {
		c.Summarization.Provider = ProviderOpenAI
	}
	switch c.Summarization.Provider {
	case ProviderOpenAI:
		if c.Summarization.Model == "" {
			c.Summarization.Model = "gpt-4o-mini"
		}
	case ProviderGemini:
		if c.Summarization.Model == "" {
			c.Summarization.Model = "gemini-2.5-flash"
		}
	default:
		return fmt.Errorf("summarization.provider must be openai or gemini, got %q", c.Summarization.Provider)
	}
	if c.Summarization.SystemPrompt == "" {
		c.Summarization.SystemPrompt = DefaultSystemPrompt
	}

	if c.OpenAI.APIKeyEnv == "" {
		c.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}

	if c.Output.Format == "" {
		c.Output.Format = OutputMarkdown
	}
	if c.Output.Format != OutputMarkdown && c.Output.Format != OutputDocx {
		return fmt.Errorf("output.format must be markdown or docx, got %q", c.Output.Format)
	}

	if c.Pipeline.FailurePolicy == "" {
		c.Pipeline.FailurePolicy = FailureAbort
	}
	if c.Pipeline.FailurePolicy != FailureAbort && c.Pipeline.FailurePolicy != FailureContinue {
		return fmt.Errorf("pipeline.failure_policy must be abort or continue, got %q", c.Pipeline.FailurePolicy)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

// NeedsOpenAI reports whether any configured backend talks to the OpenAI API.
func (c *Config) NeedsOpenAI() bool {
	return c.Transcription.Provider == ProviderOpenAI || c.Summarization.Provider == ProviderOpenAI
}

// NeedsGemini reports whether the Gemini summarizer is selected.
func (c *Config) NeedsGemini() bool {
	return c.Summarization.Provider == ProviderGemini
}
