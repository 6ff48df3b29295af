package transcribe

import (
	"strings"
	"time"
)

// Segment is a timed span of a transcript, in seconds from the start of the
// source audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the text of an audio file. Language, Duration and Segments
// are only filled by backends that return a structured result.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

// Structured reports whether the transcript carries more than plain text.
func (t Transcript) Structured() bool {
	return len(t.Segments) > 0 || t.Language != "" || t.Duration > 0
}

// Merge joins the transcripts of consecutive audio segments. offsets[i] is
// where part i starts in the original track; segment timings are shifted by
// it so they refer to the whole lecture.
func Merge(parts []Transcript, offsets []time.Duration) Transcript {
	var out Transcript
	texts := make([]string, 0, len(parts))

	for i, p := range parts {
		var offset float64
		if i < len(offsets) {
			offset = offsets[i].Seconds()
		}

		if text := strings.TrimSpace(p.Text); text != "" {
			texts = append(texts, text)
		}
		if out.Language == "" {
			out.Language = p.Language
		}
		for _, s := range p.Segments {
			out.Segments = append(out.Segments, Segment{Start: s.Start + offset, End: s.End + offset, Text: s.Text})
		}
		if p.Duration > 0 && offset+p.Duration > out.Duration {
			out.Duration = offset + p.Duration
		}
	}

	out.Text = strings.Join(texts, " ")
	return out
}
