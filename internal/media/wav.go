package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

// blockFrames is how many frames are copied per read while slicing.
const blockFrames = 4096

type wavInfo struct {
	sampleRate int
	channels   int
	bitDepth   int
	format     int
	frames     int64
}

func (w wavInfo) duration() time.Duration {
	if w.sampleRate == 0 {
		return 0
	}
	return time.Duration(w.frames * int64(time.Second) / int64(w.sampleRate))
}

// frameAt converts a track offset to a frame index, rounding down.
func (w wavInfo) frameAt(d time.Duration) int64 {
	return int64(d) * int64(w.sampleRate) / int64(time.Second)
}

func openWAV(path string) (*os.File, *wav.Decoder, wavInfo, error) {
	op := "decode " + filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, wavInfo{}, apperr.Filesystem(op, err)
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		f.Close()
		return nil, nil, wavInfo{}, apperr.MediaDecode(op, errors.New("not a valid wav file"))
	}
	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, nil, wavInfo{}, apperr.MediaDecode(op, err)
	}

	info := wavInfo{
		sampleRate: int(d.SampleRate),
		channels:   int(d.NumChans),
		bitDepth:   int(d.BitDepth),
		format:     int(d.WavAudioFormat),
	}
	if info.sampleRate == 0 || info.channels == 0 || info.bitDepth == 0 {
		f.Close()
		return nil, nil, wavInfo{}, apperr.MediaDecode(op, fmt.Errorf("invalid wav header: %d Hz, %d channels, %d bit", info.sampleRate, info.channels, info.bitDepth))
	}
	info.frames = d.PCMLen() / int64(info.channels*info.bitDepth/8)

	return f, d, info, nil
}

func readWAVInfo(path string) (wavInfo, error) {
	f, _, info, err := openWAV(path)
	if err != nil {
		return wavInfo{}, err
	}
	f.Close()
	return info, nil
}

// sliceWAV streams the PCM frames of src into one file per window. The last
// window takes whatever frames remain, so rounding in frameAt never drops audio.
func sliceWAV(ctx context.Context, src string, windows []Window, dest func(Window) string) ([]Segment, error) {
	f, d, info, err := openWAV(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := &audio.Format{NumChannels: info.channels, SampleRate: info.sampleRate}
	block := make([]int, blockFrames*info.channels)

	segments := make([]Segment, 0, len(windows))
	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		remaining := (info.frameAt(w.End) - info.frameAt(w.Start)) * int64(info.channels)
		if i == len(windows)-1 {
			remaining = math.MaxInt64
		}

		path := dest(w)
		if err := writeWAVSlice(d, path, info, format, block, remaining); err != nil {
			return nil, err
		}
		segments = append(segments, Segment{Index: w.Index, Path: path, Window: w})
	}
	return segments, nil
}

func writeWAVSlice(d *wav.Decoder, path string, info wavInfo, format *audio.Format, block []int, remaining int64) error {
	out, err := os.Create(path)
	if err != nil {
		return apperr.Filesystem("create segment", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, info.sampleRate, info.bitDepth, info.channels, info.format)
	for remaining > 0 {
		n := int64(len(block))
		if remaining < n {
			n = remaining
		}
		buf := &audio.IntBuffer{Format: format, Data: block[:n], SourceBitDepth: info.bitDepth}

		read, err := d.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return apperr.MediaDecode("read pcm", err)
		}
		if read == 0 {
			break
		}

		chunk := &audio.IntBuffer{Format: format, Data: buf.Data[:read], SourceBitDepth: info.bitDepth}
		if err := enc.Write(chunk); err != nil {
			return apperr.Filesystem("write segment "+filepath.Base(path), err)
		}
		remaining -= int64(read)
	}

	if err := enc.Close(); err != nil {
		return apperr.Filesystem("finalize segment "+filepath.Base(path), err)
	}
	if err := out.Close(); err != nil {
		return apperr.Filesystem("close segment "+filepath.Base(path), err)
	}
	return nil
}
