package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// Split implements Splitter.
func (s *implSplitter) Split(ctx context.Context, trackPath string, opts SplitOptions) ([]Segment, error) {
	st, err := os.Stat(trackPath)
	if err != nil {
		return nil, apperr.Filesystem("stat audio track", err)
	}

	if st.Size() <= opts.SizeThresholdBytes {
		s.logger.Info(ctx, "Audio track is %d bytes (limit %d), no split needed: %s", st.Size(), opts.SizeThresholdBytes, trackPath)
		return []Segment{{Index: 0, Path: trackPath}}, nil
	}

	duration, err := s.Probe(ctx, trackPath)
	if err != nil {
		return nil, err
	}

	windows, err := PlanWindows(duration, opts.Window)
	if err != nil {
		return nil, apperr.Configuration("plan windows", err)
	}
	if len(windows) == 0 {
		return nil, apperr.MediaDecode("split "+filepath.Base(trackPath), fmt.Errorf("track has no audio"))
	}

	s.logger.Info(ctx, "Splitting %s (%d bytes, %s) into %d segments of up to %s",
		trackPath, st.Size(), duration, len(windows), opts.Window)

	dest := segmentNamer(trackPath)

	var segments []Segment
	if isWAV(trackPath) {
		segments, err = sliceWAV(ctx, trackPath, windows, dest)
	} else {
		segments, err = s.sliceFFmpeg(ctx, trackPath, windows, dest)
	}
	if err != nil {
		return nil, err
	}

	if err := os.Remove(trackPath); err != nil {
		return nil, apperr.Filesystem("remove unsplit track", err)
	}
	s.logger.Debug(ctx, "Removed unsplit track: %s", trackPath)

	return segments, nil
}

func (s *implSplitter) sliceFFmpeg(ctx context.Context, src string, windows []Window, dest func(Window) string) ([]Segment, error) {
	segments := make([]Segment, 0, len(windows))
	for _, w := range windows {
		path := dest(w)

		// -ss before -i seeks on the input; -c copy avoids re-encoding
		args := []string{
			"-y",
			"-ss", formatSeconds(w.Start),
			"-t", formatSeconds(w.Duration()),
			"-i", src,
			"-vn",
			"-c", "copy",
			path,
		}
		if _, err := s.executor.Execute(ctx, "ffmpeg", args...); err != nil {
			return nil, classifyToolError(ctx, fmt.Sprintf("export segment %d of %s", w.Index, filepath.Base(src)), err)
		}

		s.logger.Debug(ctx, "Exported segment %d [%s, %s): %s", w.Index, w.Start, w.End, path)
		segments = append(segments, Segment{Index: w.Index, Path: path, Window: w})
	}
	return segments, nil
}

// segmentNamer returns <dir>/<base>_chunk_<i><ext> for each window.
func segmentNamer(trackPath string) func(Window) string {
	dir := filepath.Dir(trackPath)
	ext := filepath.Ext(trackPath)
	base := strings.TrimSuffix(filepath.Base(trackPath), ext)
	return func(w Window) string {
		return filepath.Join(dir, fmt.Sprintf("%s_chunk_%d%s", base, w.Index, ext))
	}
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
