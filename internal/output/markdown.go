package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

type markdownWriter struct{}

func (markdownWriter) Ext() string { return ".md" }

func (w markdownWriter) Create(dir, name string, header Header) (Artifact, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperr.Filesystem("create output dir", err)
	}
	path := filepath.Join(dir, name+w.Ext())

	// os.Create truncates, so a rerun replaces the previous summary
	f, err := os.Create(path)
	if err != nil {
		return nil, apperr.Filesystem("create summary", err)
	}

	title := fmt.Sprintf("# %s\n\n_%s_", header.Title, header.CreatedAt.Format("2006-01-02 15:04"))
	if header.Source != "" {
		title += fmt.Sprintf("\n\nSource: `%s`", header.Source)
	}
	if header.RunID != "" {
		title += fmt.Sprintf("  \nRun: `%s`", header.RunID)
	}
	if _, err := f.WriteString(title + "\n"); err != nil {
		f.Close()
		return nil, apperr.Filesystem("write summary header", err)
	}

	return &markdownArtifact{f: f, path: path}, nil
}

type markdownArtifact struct {
	f    *os.File
	path string
}

func (a *markdownArtifact) Path() string { return a.path }

// AddSection writes through immediately so a crash keeps earlier sections.
func (a *markdownArtifact) AddSection(heading, body string) error {
	section := fmt.Sprintf("\n## %s\n\n%s\n", heading, strings.TrimSpace(body))
	if _, err := a.f.WriteString(section); err != nil {
		return apperr.Filesystem("append summary", err)
	}
	return nil
}

func (a *markdownArtifact) Close() error {
	if err := a.f.Close(); err != nil {
		return apperr.Filesystem("close summary", err)
	}
	return nil
}
