package processor

import (
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/media"
	"github.com/nguyentantai21042004/lecture-digest/internal/output"
	"github.com/nguyentantai21042004/lecture-digest/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-digest/internal/transcribe"
)

// Deps are the collaborators a Processor drives.
type Deps struct {
	Extractor   media.Extractor
	Splitter    media.Splitter
	Transcriber transcribe.Transcriber
	Summarizer  summarizer.Summarizer
	Writer      output.Writer

	// OnItemDone, if set, is called after every batch item.
	OnItemDone func(source string, err error)
}

type implProcessor struct {
	cfg    *config.Config
	logger logger.Logger
	runID  string

	extractor   media.Extractor
	splitter    media.Splitter
	transcriber transcribe.Transcriber
	summarizer  summarizer.Summarizer
	writer      output.Writer
	onItemDone  func(string, error)
}

// New creates a new Processor instance
func New(cfg *config.Config, log logger.Logger, deps Deps) Processor {
	writer := deps.Writer
	if writer == nil {
		writer = output.New(cfg.Output.Format)
	}
	return &implProcessor{
		cfg:         cfg,
		logger:      log,
		runID:       uuid.NewString(),
		extractor:   deps.Extractor,
		splitter:    deps.Splitter,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		writer:      writer,
		onItemDone:  deps.OnItemDone,
	}
}
