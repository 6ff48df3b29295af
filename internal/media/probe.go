package media

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// Probe returns the duration of path. WAV headers are read directly; other
// containers are asked via ffprobe.
func (s *implSplitter) Probe(ctx context.Context, path string) (time.Duration, error) {
	if isWAV(path) {
		info, err := readWAVInfo(path)
		if err != nil {
			return 0, err
		}
		return info.duration(), nil
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := s.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return 0, classifyToolError(ctx, "probe "+filepath.Base(path), err)
	}
	return parseProbeDuration(path, out)
}

func parseProbeDuration(path, out string) (time.Duration, error) {
	raw := strings.TrimSpace(out)
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, apperr.MediaDecode("probe "+filepath.Base(path), fmt.Errorf("unexpected duration %q", raw))
	}
	return time.Duration(math.Round(secs * float64(time.Second))), nil
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}
