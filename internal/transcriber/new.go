package transcriber

import (
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

// Options configures the whisper.cpp command line.
type Options struct {
	BinaryPath string
	ModelDir   string
	// ModelSize is one of tiny, base, small, medium, large.
	ModelSize string
	// Language is an ISO code; empty means auto-detect.
	Language string
	Threads  int
}

type implTranscriber struct {
	opts     Options
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp backed Transcriber
func New(opts Options, exec executor.Executor, log logger.Logger) Transcriber {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "whisper-cli"
	}
	if opts.ModelSize == "" {
		opts.ModelSize = "base"
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	return &implTranscriber{
		opts:     opts,
		executor: exec,
		logger:   log,
	}
}

func (t *implTranscriber) ModelPath() string {
	return filepath.Join(t.opts.ModelDir, fmt.Sprintf("ggml-%s.bin", t.opts.ModelSize))
}
