package transcribe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/pkg/executor"
)

type whisperTranscriber struct {
	whisper  config.WhisperConfig
	cfg      config.TranscriptionConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber that runs a local whisper.cpp binary.
func NewWhisper(whisper config.WhisperConfig, cfg config.TranscriptionConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{whisper: whisper, cfg: cfg, executor: exec, logger: log}
}

// Transcribe runs whisper-cli with plain text output and reads the result back.
func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	// Whisper appends .txt to the prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	txtPath := outputPrefix + ".txt"

	language := w.cfg.Language
	if language == "" {
		language = "auto"
	}

	w.logger.Info(ctx, "Starting local transcription with %d threads: %s", w.whisper.Threads, audioPath)

	// -otxt: plain text output, -l: language (auto detects), -t: threads
	args := []string{
		"-m", w.whisper.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", language,
		"-t", strconv.Itoa(w.whisper.Threads),
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.whisper.BinaryPath, args...); err != nil {
		return Transcript{}, serviceError(ctx, "whisper transcribe "+filepath.Base(audioPath), err)
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return Transcript{}, apperr.Filesystem("read whisper output", err)
	}
	if err := os.Remove(txtPath); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup whisper output %s: %v", txtPath, err)
	}

	w.logger.Info(ctx, "Transcription completed: %s", audioPath)
	return Transcript{Text: strings.TrimSpace(string(data))}, nil
}
