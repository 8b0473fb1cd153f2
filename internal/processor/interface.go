package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// Processor runs the lecture pipeline for one video.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// AudioExtractor writes a video's audio track to audioPath.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
}

// Transcriber turns audio into timed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error)
}
