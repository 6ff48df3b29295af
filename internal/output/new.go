package output

import (
	"time"

	"github.com/nguyentantai21042004/lecture-digest/internal/config"
)

// Header is the title block written at the top of an artifact.
type Header struct {
	Title     string
	Source    string
	RunID     string
	CreatedAt time.Time
}

// New returns the Writer for format (config.OutputMarkdown or config.OutputDocx).
func New(format string) Writer {
	if format == config.OutputDocx {
		return docxWriter{}
	}
	return markdownWriter{}
}
