package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/lecture-digest/internal/apperr"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

type docxWriter struct{}

func (docxWriter) Ext() string { return ".docx" }

func (w docxWriter) Create(dir, name string, header Header) (Artifact, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperr.Filesystem("create output dir", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new docx document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), header.Title, true, 16)
	meta := header.CreatedAt.Format("2006-01-02 15:04")
	if header.Source != "" {
		meta += " · " + header.Source
	}
	addStyledRun(doc.AddParagraph(""), meta, false, fontSize)

	return &docxArtifact{doc: doc, path: filepath.Join(dir, name+w.Ext())}, nil
}

// docxArtifact builds the whole document in memory; SaveTo on Close replaces
// any file from an earlier run.
type docxArtifact struct {
	doc  *docx.RootDoc
	path string
}

func (a *docxArtifact) Path() string { return a.path }

func (a *docxArtifact) AddSection(heading, body string) error {
	addStyledRun(a.doc.AddParagraph(""), heading, true, headingSize(2))
	appendMarkdown(a.doc, body)
	return nil
}

func (a *docxArtifact) Close() error {
	if err := a.doc.SaveTo(a.path); err != nil {
		return apperr.Filesystem("save "+filepath.Base(a.path), err)
	}
	return nil
}

// appendMarkdown maps the markdown a model typically returns (headings,
// bullets, numbered items, **bold**) onto styled paragraphs.
func appendMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			// section headings are level 2, keep model headings below them
			level := len(m[1]) + 1
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(level))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

// WriteTranscriptDocx writes a transcript as one paragraph per line,
// skipping consecutive duplicates that whisper tends to emit on silence.
func WriteTranscriptDocx(title string, lines []string, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new docx document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	prev := ""
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || t == prev {
			continue
		}
		prev = t
		doc.AddParagraph("").AddText(t).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(path); err != nil {
		return apperr.Filesystem("save "+filepath.Base(path), err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
