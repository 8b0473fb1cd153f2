package media

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

// Options configures the ffmpeg invocation.
type Options struct {
	BinaryPath string
	SampleRate int
}

type implExtractor struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg backed Extractor
func New(opts Options, exec executor.Executor, log logger.Logger) Extractor {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "ffmpeg"
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 16000
	}
	return &implExtractor{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}
