package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
	"github.com/nguyentantai21042004/lecture-digest/internal/config"
	"github.com/nguyentantai21042004/lecture-digest/internal/logger"
	"github.com/nguyentantai21042004/lecture-digest/internal/media"
	"github.com/nguyentantai21042004/lecture-digest/internal/textsplit"
	"github.com/nguyentantai21042004/lecture-digest/internal/transcribe"
)

type fakeExtractor struct {
	fail map[string]error
}

func (f *fakeExtractor) Extract(ctx context.Context, videoPath, destDir string) (string, error) {
	if err := f.fail[filepath.Base(videoPath)]; err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	out := filepath.Join(destDir, strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))+".mp3")
	return out, os.WriteFile(out, []byte("audio"), 0644)
}

// fakeSplitter cuts every track into n segments of 20 minutes.
type fakeSplitter struct {
	n int
}

func (f *fakeSplitter) Split(ctx context.Context, trackPath string, opts media.SplitOptions) ([]media.Segment, error) {
	segments := make([]media.Segment, f.n)
	for i := range segments {
		path := strings.TrimSuffix(trackPath, ".mp3") + fmt.Sprintf("_chunk_%d.mp3", i)
		if err := os.WriteFile(path, []byte("chunk"), 0644); err != nil {
			return nil, err
		}
		segments[i] = media.Segment{
			Index:  i,
			Path:   path,
			Window: media.Window{Index: i, Start: time.Duration(i) * opts.Window, End: time.Duration(i+1) * opts.Window},
		}
	}
	return segments, nil
}

func (f *fakeSplitter) Probe(ctx context.Context, path string) (time.Duration, error) {
	return 0, nil
}

// fakeTranscriber returns wordsPerSegment numbered words for each call.
type fakeTranscriber struct {
	wordsPerSegment int
	calls           []string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (transcribe.Transcript, error) {
	start := len(f.calls) * f.wordsPerSegment
	f.calls = append(f.calls, audioPath)

	words := make([]string, f.wordsPerSegment)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", start+i)
	}
	return transcribe.Transcript{Text: strings.Join(words, ", ")}, nil
}

type fakeSummarizer struct {
	inputs []string
	failAt int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.inputs = append(f.inputs, text)
	if f.failAt > 0 && len(f.inputs) == f.failAt {
		return "", apperr.ExternalService("chat completion", errors.New("status 429"))
	}
	return fmt.Sprintf("summary of %d tokens", len(textsplit.Tokenize(text))), nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		Lectures:  filepath.Join(root, "Lectures"),
		Audio:     filepath.Join(root, "Audio"),
		SplitText: filepath.Join(root, "SplitText"),
		Output:    filepath.Join(root, "Output"),
		Archived:  filepath.Join(root, "Archived"),
	}
	if err := os.MkdirAll(cfg.Paths.Lectures, 0755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func writeVideo(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.Lectures, name)
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessWritesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, cfg, "week1.mp4")

	tr := &fakeTranscriber{wordsPerSegment: 2250}
	sum := &fakeSummarizer{}
	p := New(cfg, logger.Nop(), Deps{
		Extractor:   &fakeExtractor{},
		Splitter:    &fakeSplitter{n: 2},
		Transcriber: tr,
		Summarizer:  sum,
	})

	res, err := p.Process(context.Background(), video)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.AudioSegments != 2 || res.TextSegments != 3 {
		t.Errorf("segments = %d audio, %d text, want 2 and 3", res.AudioSegments, res.TextSegments)
	}
	if len(tr.calls) != 2 {
		t.Errorf("transcriber called %d times, want 2", len(tr.calls))
	}

	var sizes []int
	for _, in := range sum.inputs {
		sizes = append(sizes, len(textsplit.Tokenize(in)))
	}
	if !reflect.DeepEqual(sizes, []int{2000, 2000, 500}) {
		t.Errorf("summarized piece sizes = %v, want [2000 2000 500]", sizes)
	}
	if !strings.HasPrefix(sum.inputs[1], "word2000 word2001") {
		t.Errorf("second piece starts with %q", sum.inputs[1][:20])
	}

	transcript, err := os.ReadFile(filepath.Join(cfg.Paths.Output, "week1_transcript.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(textsplit.Tokenize(string(transcript))); got != 4500 {
		t.Errorf("transcript has %d tokens, want 4500", got)
	}

	for i := 0; i < 3; i++ {
		if _, err := os.Stat(filepath.Join(cfg.Paths.SplitText, fmt.Sprintf("week1_%d.txt", i))); err != nil {
			t.Errorf("split text %d missing: %v", i, err)
		}
	}

	summary, err := os.ReadFile(res.SummaryPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# week1", "## Part 1\n\nsummary of 2000 tokens", "## Part 3\n\nsummary of 500 tokens"} {
		if !strings.Contains(string(summary), want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestProcessIsIdempotentAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, cfg, "week1.mp4")

	run := func() string {
		p := New(cfg, logger.Nop(), Deps{
			Extractor:   &fakeExtractor{},
			Splitter:    &fakeSplitter{n: 1},
			Transcriber: &fakeTranscriber{wordsPerSegment: 3000},
			Summarizer:  &fakeSummarizer{},
		})
		res, err := p.Process(context.Background(), video)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		data, err := os.ReadFile(res.SummaryPath)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	first := run()
	second := run()
	if strings.Count(second, "## Part") != 2 {
		t.Errorf("second run summary has %d parts, want 2:\n%s", strings.Count(second, "## Part"), second)
	}
	if len(second) > len(first)+64 {
		t.Errorf("summary grew across runs: %d -> %d bytes", len(first), len(second))
	}

	transcript, _ := os.ReadFile(filepath.Join(cfg.Paths.Output, "week1_transcript.txt"))
	if got := len(textsplit.Tokenize(string(transcript))); got != 3000 {
		t.Errorf("transcript has %d tokens after rerun, want 3000", got)
	}
}

func TestProcessStopsOnDecodeError(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, cfg, "corrupt.mp4")

	sum := &fakeSummarizer{}
	p := New(cfg, logger.Nop(), Deps{
		Extractor:   &fakeExtractor{fail: map[string]error{"corrupt.mp4": apperr.MediaDecode("extract audio", errors.New("moov atom not found"))}},
		Splitter:    &fakeSplitter{n: 1},
		Transcriber: &fakeTranscriber{wordsPerSegment: 10},
		Summarizer:  sum,
	})

	_, err := p.Process(context.Background(), video)
	if !errors.Is(err, apperr.ErrMediaDecode) {
		t.Fatalf("Process() error = %v, want media decode error", err)
	}
	if len(sum.inputs) != 0 {
		t.Error("summarizer called after decode failure")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "corrupt.md")); !os.IsNotExist(err) {
		t.Error("summary written for a failed video")
	}
}

func TestProcessSummarizerFailureKeepsEarlierParts(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, cfg, "week3.mp4")

	p := New(cfg, logger.Nop(), Deps{
		Extractor:   &fakeExtractor{},
		Splitter:    &fakeSplitter{n: 1},
		Transcriber: &fakeTranscriber{wordsPerSegment: 4500},
		Summarizer:  &fakeSummarizer{failAt: 2},
	})

	res, err := p.Process(context.Background(), video)
	if !errors.Is(err, apperr.ErrExternalService) {
		t.Fatalf("Process() error = %v, want external service error", err)
	}
	data, readErr := os.ReadFile(res.SummaryPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if !strings.Contains(string(data), "## Part 1") || strings.Contains(string(data), "## Part 2") {
		t.Errorf("partial summary = %s", data)
	}
}

func TestRunBatchFailurePolicy(t *testing.T) {
	tests := []struct {
		name        string
		policy      string
		wantResults int
		wantCalls   int
	}{
		{"abort stops at first failure", config.FailureAbort, 1, 1},
		{"continue processes the rest", config.FailureContinue, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Pipeline.FailurePolicy = tt.policy
			videos := []string{
				writeVideo(t, cfg, "a.mp4"),
				writeVideo(t, cfg, "b.mp4"),
				writeVideo(t, cfg, "c.mp4"),
			}

			tr := &fakeTranscriber{wordsPerSegment: 10}
			var done []string
			p := New(cfg, logger.Nop(), Deps{
				Extractor:   &fakeExtractor{fail: map[string]error{"b.mp4": apperr.MediaDecode("extract audio", errors.New("bad"))}},
				Splitter:    &fakeSplitter{n: 1},
				Transcriber: tr,
				Summarizer:  &fakeSummarizer{},
				OnItemDone:  func(source string, err error) { done = append(done, filepath.Base(source)) },
			})

			report, err := p.RunBatch(context.Background(), videos)
			if !errors.Is(err, apperr.ErrMediaDecode) {
				t.Errorf("RunBatch() error = %v, want media decode error", err)
			}
			if len(report.Results) != tt.wantResults {
				t.Errorf("results = %d, want %d", len(report.Results), tt.wantResults)
			}
			if len(report.Failures) != 1 || filepath.Base(report.Failures[0].Source) != "b.mp4" {
				t.Errorf("failures = %+v", report.Failures)
			}
			if len(tr.calls) != tt.wantCalls {
				t.Errorf("transcriber calls = %d, want %d", len(tr.calls), tt.wantCalls)
			}
			if len(done) != tt.wantResults+1 {
				t.Errorf("OnItemDone called for %v", done)
			}
		})
	}
}

func TestRunBatchArchivesProcessedVideos(t *testing.T) {
	cfg := testConfig(t)
	cfg.Pipeline.ArchiveProcessed = true
	video := writeVideo(t, cfg, "week4.mov")

	p := New(cfg, logger.Nop(), Deps{
		Extractor:   &fakeExtractor{},
		Splitter:    &fakeSplitter{n: 1},
		Transcriber: &fakeTranscriber{wordsPerSegment: 5},
		Summarizer:  &fakeSummarizer{},
	})

	if _, err := p.RunBatch(context.Background(), []string{video}); err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if _, err := os.Stat(video); !os.IsNotExist(err) {
		t.Error("video still in lectures dir")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "week4.mov")); err != nil {
		t.Errorf("video not archived: %v", err)
	}
}

func TestSummarizeTranscripts(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.Output, 0755); err != nil {
		t.Fatal(err)
	}
	words := strings.TrimSpace(strings.Repeat("graph ", 2500))
	if err := os.WriteFile(filepath.Join(cfg.Paths.Output, "week5_transcript.txt"), []byte(words), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.Output, "week5.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	sum := &fakeSummarizer{}
	p := New(cfg, logger.Nop(), Deps{Summarizer: sum})

	report, err := p.SummarizeTranscripts(context.Background(), cfg.Paths.Output)
	if err != nil {
		t.Fatalf("SummarizeTranscripts() error = %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].TextSegments != 2 {
		t.Fatalf("report = %+v", report)
	}
	data, _ := os.ReadFile(filepath.Join(cfg.Paths.Output, "week5.md"))
	if strings.HasPrefix(string(data), "old") || !strings.Contains(string(data), "summary of 500 tokens") {
		t.Errorf("summary = %s", data)
	}
}

func TestDiscoverVideos(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.MP4", "a.mkv", "notes.txt", ".hidden.mp4", "c.webm"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := DiscoverVideos(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.mkv"), filepath.Join(dir, "b.MP4"), filepath.Join(dir, "c.webm")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverVideos() = %v, want %v", got, want)
	}
}
