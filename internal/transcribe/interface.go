package transcribe

import "context"

// Transcriber turns one audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (Transcript, error)
}
