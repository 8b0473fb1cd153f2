package batch

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// Options controls discovery and concurrency.
type Options struct {
	// Extensions are matched case-insensitively, with the leading dot.
	Extensions []string
	// Parallel caps how many videos are processed at once.
	Parallel int
}

type implRunner struct {
	proc   processor.Processor
	opts   Options
	logger logger.Logger
}

// New creates a batch Runner on top of proc
func New(proc processor.Processor, opts Options, log logger.Logger) Runner {
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &implRunner{
		proc:   proc,
		opts:   opts,
		logger: log,
	}
}
