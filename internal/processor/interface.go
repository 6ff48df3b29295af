package processor

import (
	"context"
	"time"
)

// Processor runs lectures through the extract, split, transcribe, chunk and
// summarize pipeline. Work is strictly sequential.
type Processor interface {
	// Process runs the whole pipeline for one video.
	Process(ctx context.Context, videoPath string) (Result, error)
	// RunBatch processes videos in order, honouring the configured failure policy.
	RunBatch(ctx context.Context, videos []string) (Report, error)
	// SummarizeTranscripts re-summarizes every *_transcript.txt file in dir.
	SummarizeTranscripts(ctx context.Context, dir string) (Report, error)
}

// Result describes the artifacts produced for one lecture.
type Result struct {
	Source         string
	TranscriptPath string
	SummaryPath    string
	AudioSegments  int
	TextSegments   int
	Elapsed        time.Duration
}

// Failure records an item that could not be processed.
type Failure struct {
	Source string
	Err    error
}

// Report is the outcome of a batch.
type Report struct {
	Results  []Result
	Failures []Failure
}
