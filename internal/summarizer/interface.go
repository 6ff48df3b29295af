package summarizer

import "context"

// Summarizer turns one piece of transcript into a natural-language summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
