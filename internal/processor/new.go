package processor

import (
	"errors"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/normalizer"
)

// Deps are the collaborators a Processor drives.
type Deps struct {
	Extractor   AudioExtractor
	Transcriber Transcriber
	Normalizer  *normalizer.Normalizer
	Generator   generator.Generator
	Logger      logger.Logger

	// Template and Prompt hold loaded contents; empty means the built-in ones.
	Template string
	Prompt   string

	// Now and Sleep default to the real clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

type implProcessor struct {
	cfg         *config.Config
	extractor   AudioExtractor
	transcriber Transcriber
	normalizer  *normalizer.Normalizer
	generator   generator.Generator
	logger      logger.Logger
	template    string
	prompt      string
	now         func() time.Time
	sleep       func(time.Duration)
}

// New creates a Processor. cfg must already be validated.
func New(cfg *config.Config, deps Deps) (Processor, error) {
	if cfg == nil {
		return nil, errors.New("processor: nil config")
	}
	if deps.Extractor == nil || deps.Transcriber == nil || deps.Normalizer == nil || deps.Generator == nil {
		return nil, errors.New("processor: missing collaborator")
	}

	p := &implProcessor{
		cfg:         cfg,
		extractor:   deps.Extractor,
		transcriber: deps.Transcriber,
		normalizer:  deps.Normalizer,
		generator:   deps.Generator,
		logger:      deps.Logger,
		template:    deps.Template,
		prompt:      deps.Prompt,
		now:         deps.Now,
		sleep:       deps.Sleep,
	}
	if p.logger == nil {
		p.logger = logger.Discard()
	}
	if p.template == "" {
		p.template = assembler.DefaultTemplate()
	}
	if p.prompt == "" {
		p.prompt = generator.DefaultPrompt()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	return p, nil
}
