package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
)

// finalize writes the notes and removes intermediates unless they are kept.
func (p *implProcessor) finalize(ctx context.Context, r *run) error {
	path, err := r.store.WriteFile(artifact.StageDocument, []byte(r.document))
	if err != nil {
		return stageErr(FilesystemError, err)
	}
	r.documentPath = path

	keep := p.cfg.Run.KeepIntermediates
	if err := r.store.Finalize(keep); err != nil {
		return stageErr(FilesystemError, err)
	}
	if keep {
		p.logger.Info(ctx, "Intermediates kept in %s", r.store.Dir())
	} else {
		p.logger.Debug(ctx, "Removed intermediates from %s", r.store.Dir())
	}
	return nil
}
