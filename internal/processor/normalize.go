package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

func (p *implProcessor) normalize(ctx context.Context, r *run) error {
	if p.resumable(ctx, r, artifact.StageCleaned) {
		data, err := r.store.ReadFile(artifact.StageCleaned)
		if err != nil {
			return stageErr(FilesystemError, err)
		}
		r.cleaned = transcript.ParseCleaned(string(data))
		return nil
	}

	cleaned, stats := p.normalizer.Normalize(r.segments)
	r.cleaned = cleaned
	p.logger.Info(ctx, "Normalized %d segments: %d tokens in, %d fillers, %d stop words, %d artifacts removed, %d paragraphs",
		stats.Segments, stats.TokensIn, stats.FillersRemoved, stats.StopsRemoved, stats.ArtifactsRemoved, stats.Paragraphs)

	if cleaned.Empty() {
		return nil
	}
	if _, err := r.store.WriteFile(artifact.StageCleaned, []byte(cleaned.Text())); err != nil {
		return stageErr(FilesystemError, err)
	}
	return nil
}
