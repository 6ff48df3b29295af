package media

import (
	"fmt"
	"time"
)

// Window is a half-open time range [Start, End) of an audio track.
type Window struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End - w.Start
}

// Segment is one file produced by a Splitter.
type Segment struct {
	Index int
	Path  string
	Window
}

// SplitOptions bounds the size of segments handed to the transcriber.
type SplitOptions struct {
	SizeThresholdBytes int64
	Window             time.Duration
}

// PlanWindows cuts [0, total) into ceil(total/size) windows of at most size.
// The last window is clamped to total, so an exact multiple never yields an
// empty trailing window.
func PlanWindows(total, size time.Duration) ([]Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %s", size)
	}
	if total <= 0 {
		return nil, nil
	}

	n := int(total / size)
	if total%size != 0 {
		n++
	}

	windows := make([]Window, n)
	for i := range windows {
		start := time.Duration(i) * size
		end := start + size
		if end > total {
			end = total
		}
		windows[i] = Window{Index: i, Start: start, End: end}
	}
	return windows, nil
}
