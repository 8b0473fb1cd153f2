package media

import "context"

// Extractor pulls a speech-ready audio track out of a video file.
type Extractor interface {
	// ExtractAudio writes the audio track of videoPath to audioPath.
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	// CheckAvailable verifies the ffmpeg binary can be found.
	CheckAvailable() error
}
