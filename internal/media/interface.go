package media

import (
	"context"
	"time"
)

// Extractor pulls the audio track out of a video file.
type Extractor interface {
	// Extract writes the audio track of videoPath into destDir and returns its path.
	Extract(ctx context.Context, videoPath, destDir string) (string, error)
}

// Splitter partitions an audio track into files small enough for the
// transcription service.
type Splitter interface {
	// Split returns the ordered segments covering trackPath. Tracks at or below
	// opts.SizeThresholdBytes come back unchanged as a single segment; larger
	// tracks are sliced into opts.Window sized files and the original is removed.
	Split(ctx context.Context, trackPath string, opts SplitOptions) ([]Segment, error)
	// Probe returns the duration of an audio file.
	Probe(ctx context.Context, path string) (time.Duration, error)
}
