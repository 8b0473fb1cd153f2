package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// transcribe runs speech recognition on the audio artifact and stores the
// segments as SRT. Failures are not retried.
func (p *implProcessor) transcribe(ctx context.Context, r *run) error {
	if p.resumable(ctx, r, artifact.StageRawTranscript) {
		data, err := r.store.ReadFile(artifact.StageRawTranscript)
		if err != nil {
			return stageErr(FilesystemError, err)
		}
		segments, err := transcript.ParseSRT(string(data))
		if err == nil {
			r.segments = segments
			return nil
		}
		p.logger.Warn(ctx, "Existing transcript is unreadable, transcribing again: %v", err)
	}

	p.logger.Info(ctx, "Transcribing %s", r.audioPath)
	segments, err := p.transcriber.Transcribe(ctx, r.audioPath)
	if err != nil {
		return stageErr(TranscriptionError, err)
	}
	r.segments = segments

	if _, err := r.store.WriteFile(artifact.StageRawTranscript, []byte(transcript.FormatSRT(segments))); err != nil {
		return stageErr(FilesystemError, err)
	}
	p.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return nil
}
