package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// Extract exports the audio of videoPath as <destDir>/<base>.<format>.
// mp3 keeps lectures small enough that most fit under the upload limit
// without splitting; wav is lossless and sliced without ffmpeg.
func (e *implExtractor) Extract(ctx context.Context, videoPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", apperr.Filesystem("create audio dir", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(destDir, base+"."+e.cfg.Format)

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video, -ac/-ar: channels and sample rate, -y: overwrite
	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", strconv.Itoa(e.cfg.Channels),
		"-ar", strconv.Itoa(e.cfg.SampleRate),
	}
	switch e.cfg.Format {
	case "wav":
		args = append(args, "-c:a", "pcm_s16le")
	default:
		args = append(args, "-c:a", "libmp3lame")
		if e.cfg.Bitrate != "" {
			args = append(args, "-b:a", e.cfg.Bitrate)
		}
	}
	args = append(args, audioPath)

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", classifyToolError(ctx, "extract audio from "+filepath.Base(videoPath), err)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}

// classifyToolError separates "ffmpeg is not installed" from "ffmpeg could
// not read the input".
func classifyToolError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return apperr.Configuration(op, fmt.Errorf("required tool not found on PATH: %w", err))
	}
	return apperr.MediaDecode(op, err)
}
