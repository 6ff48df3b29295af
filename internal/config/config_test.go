package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "whisper provider without model",
			config: Config{
				Transcription: TranscriptionConfig{Provider: ProviderWhisper},
			},
			wantErr: true,
		},
		{
			name: "whisper provider with model",
			config: Config{
				Transcription: TranscriptionConfig{Provider: ProviderWhisper},
				Whisper:       WhisperConfig{ModelPath: "models/ggml-base.en.bin"},
			},
			wantErr: false,
		},
		{
			name: "unknown summarizer",
			config: Config{
				Summarization: SummarizationConfig{Provider: "claude"},
			},
			wantErr: true,
		},
		{
			name: "unknown failure policy",
			config: Config{
				Pipeline: PipelineConfig{FailurePolicy: "retry"},
			},
			wantErr: true,
		},
		{
			name: "negative window",
			config: Config{
				Split: SplitConfig{WindowSeconds: -5},
			},
			wantErr: true,
		},
		{
			name: "unsupported audio format",
			config: Config{
				Audio: AudioConfig{Format: "flac"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Split.SizeThresholdBytes != 26214400 {
		t.Errorf("SizeThresholdBytes = %d, want 26214400", cfg.Split.SizeThresholdBytes)
	}
	if cfg.Split.WindowSeconds != 1200 {
		t.Errorf("WindowSeconds = %d, want 1200", cfg.Split.WindowSeconds)
	}
	if cfg.Split.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", cfg.Split.MaxTokens)
	}
	if cfg.Paths.Lectures != "Lectures" || cfg.Paths.Output != "Output" {
		t.Errorf("Paths = %+v, want Lectures/Output defaults", cfg.Paths)
	}
	if cfg.Pipeline.FailurePolicy != FailureAbort {
		t.Errorf("FailurePolicy = %q, want %q", cfg.Pipeline.FailurePolicy, FailureAbort)
	}
	if cfg.Transcription.Model != "whisper-1" {
		t.Errorf("Transcription.Model = %q, want whisper-1", cfg.Transcription.Model)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
paths:
  lectures: "data/lectures"
  output: "data/output"

split:
  window_seconds: 600
  max_tokens: 1500

summarization:
  provider: gemini

pipeline:
  failure_policy: continue

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.Lectures != "data/lectures" {
		t.Errorf("Lectures = %v, want %v", cfg.Paths.Lectures, "data/lectures")
	}
	if cfg.Paths.SplitText != "SplitText" {
		t.Errorf("SplitText = %v, want default SplitText", cfg.Paths.SplitText)
	}
	if cfg.Split.WindowSeconds != 600 {
		t.Errorf("WindowSeconds = %d, want 600", cfg.Split.WindowSeconds)
	}
	if cfg.Split.SizeThresholdBytes != DefaultSizeThresholdBytes {
		t.Errorf("SizeThresholdBytes = %d, want default", cfg.Split.SizeThresholdBytes)
	}
	if cfg.Summarization.Model != "gemini-2.5-flash" {
		t.Errorf("Summarization.Model = %q, want gemini-2.5-flash", cfg.Summarization.Model)
	}
	if cfg.Pipeline.FailurePolicy != FailureContinue {
		t.Errorf("FailurePolicy = %q, want continue", cfg.Pipeline.FailurePolicy)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestResolveCredentials(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "sk-test"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ResolveCredentials(lookup); err != nil {
		t.Fatalf("ResolveCredentials() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}

	cfg = Default()
	cfg.Summarization.Provider = ProviderGemini
	err := cfg.ResolveCredentials(lookup)
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("ResolveCredentials() error = %v, want configuration error", err)
	}

	cfg = &Config{
		Transcription: TranscriptionConfig{Provider: ProviderWhisper},
		Summarization: SummarizationConfig{Provider: ProviderGemini},
		Whisper:       WhisperConfig{ModelPath: "m.bin"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	env["GEMINI_API_KEY"] = "g-key"
	if err := cfg.ResolveCredentials(lookup); err != nil {
		t.Errorf("ResolveCredentials() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Error("OpenAI key resolved although no openai backend is selected")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LECTURE_DIGEST_TEST_KEY=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LECTURE_DIGEST_TEST_KEY", "")
	os.Unsetenv("LECTURE_DIGEST_TEST_KEY")

	if err := LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles() error = %v", err)
	}
	if got := os.Getenv("LECTURE_DIGEST_TEST_KEY"); got != "from-file" {
		t.Errorf("LECTURE_DIGEST_TEST_KEY = %q, want from-file", got)
	}
}

func TestResolveSummarizerCredentials(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "OPENAI_API_KEY" {
			return "sk-test", true
		}
		return "", false
	}

	cfg := &Config{
		Transcription: TranscriptionConfig{Provider: ProviderOpenAI},
		Summarization: SummarizationConfig{Provider: ProviderGemini},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ResolveSummarizerCredentials(lookup); !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("ResolveSummarizerCredentials() error = %v, want configuration error", err)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Error("OpenAI key resolved for a gemini-only summarize run")
	}
}
