package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// Transcriber turns an audio file into timed text segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error)
	// ModelPath returns the ggml model file the transcriber loads.
	ModelPath() string
}
