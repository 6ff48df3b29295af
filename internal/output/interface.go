package output

// Artifact is a per-video summary document. Sections are appended in order;
// Close finishes the document.
type Artifact interface {
	AddSection(heading, body string) error
	Close() error
	Path() string
}

// Writer creates summary artifacts in one format.
type Writer interface {
	// Create truncates or creates <dir>/<name><ext> and writes its title block.
	Create(dir, name string, header Header) (Artifact, error)
	// Ext is the file extension of the artifacts, including the dot.
	Ext() string
}
