package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
)

func (p *implProcessor) assemble(ctx context.Context, r *run) error {
	date := p.now().Format(p.cfg.Document.DateFormat)
	doc, err := assembler.Assemble(p.template, r.title, date, r.body)
	if err != nil {
		return stageErr(AssemblyError, err)
	}
	r.document = doc
	return nil
}
