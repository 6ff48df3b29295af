package media

import (
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/pkg/executor"
)

type implExtractor struct {
	cfg      config.AudioConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewExtractor creates an ffmpeg backed Extractor.
func NewExtractor(cfg config.AudioConfig, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

type implSplitter struct {
	executor executor.Executor
	logger   logger.Logger
}

// NewSplitter creates a Splitter. WAV tracks are sliced in-process; other
// formats go through ffmpeg.
func NewSplitter(exec executor.Executor, log logger.Logger) Splitter {
	return &implSplitter{
		executor: exec,
		logger:   log,
	}
}
