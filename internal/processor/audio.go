package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
)

// extractAudio converts the video's soundtrack into the audio artifact.
// Failures are input or configuration problems and are not retried.
func (p *implProcessor) extractAudio(ctx context.Context, r *run) error {
	audioPath, err := r.store.Allocate(artifact.StageAudio)
	if err != nil {
		return stageErr(FilesystemError, err)
	}
	r.audioPath = audioPath

	if p.resumable(ctx, r, artifact.StageAudio) {
		return nil
	}

	info, err := os.Stat(r.video)
	if err != nil {
		return stageErr(ExtractionError, fmt.Errorf("video not readable: %w", err))
	}
	if !info.Mode().IsRegular() {
		return stageErr(ExtractionError, fmt.Errorf("video %s is not a regular file", r.video))
	}

	p.logger.Info(ctx, "Extracting audio: %s", r.video)
	if err := p.extractor.ExtractAudio(ctx, r.video, audioPath); err != nil {
		return stageErr(ExtractionError, err)
	}
	return nil
}
