package main

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/media"
	"github.com/nguyentantai21042004/lecture-notes/internal/normalizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

func newExtractor(cfg *config.Config, exec executor.Executor, log logger.Logger) media.Extractor {
	return media.New(media.Options{
		BinaryPath: cfg.FFmpeg.BinaryPath,
		SampleRate: cfg.FFmpeg.SampleRate,
	}, exec, log)
}

func newTranscriber(cfg *config.Config, exec executor.Executor, log logger.Logger) transcriber.Transcriber {
	return transcriber.New(transcriber.Options{
		BinaryPath: cfg.Whisper.BinaryPath,
		ModelDir:   cfg.Whisper.ModelDir,
		ModelSize:  cfg.Whisper.ModelSize,
		Language:   cfg.Whisper.Language,
		Threads:    cfg.Whisper.Threads,
	}, exec, log)
}

func newNormalizer(cfg *config.Config) (*normalizer.Normalizer, error) {
	return normalizer.New(normalizer.Options{
		FillerWords:        cfg.Normalizer.FillerWords,
		StopWords:          cfg.Normalizer.StopWords,
		ArtifactPatterns:   cfg.Normalizer.ArtifactPatterns,
		SilenceThreshold:   cfg.Normalizer.SilenceThreshold,
		MaxParagraphTokens: cfg.Normalizer.MaxParagraphTokens,
	})
}

// newGenerator builds the configured provider. A provider that needs a key
// but has none falls back to the offline template generator.
func newGenerator(ctx context.Context, cfg *config.Config, log logger.Logger) (generator.Generator, error) {
	gen := cfg.Generation
	if gen.RequiresAPIKey() && len(gen.APIKeys) == 0 {
		log.Warn(ctx, "No API key configured for %s, using the offline template generator", gen.Provider)
		return generator.NewTemplate(gen.TemplateSections), nil
	}

	switch gen.Provider {
	case config.ProviderDeepSeek:
		return generator.NewDeepSeek(generator.DeepSeekOptions{
			BaseURL: gen.BaseURL,
			APIKey:  gen.APIKeys[0],
			Model:   gen.Model,
		}, log), nil
	case config.ProviderGemini:
		return generator.NewGemini(generator.GeminiOptions{
			APIKeys: gen.APIKeys,
			Model:   gen.Model,
			BaseURL: gen.BaseURL,
		}, log)
	default:
		return generator.NewTemplate(gen.TemplateSections), nil
	}
}

// newPipeline wires the full processor from cfg.
func newPipeline(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	exec := executor.New()

	norm, err := newNormalizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}
	gen, err := newGenerator(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}
	tmpl, err := loadTemplate(cfg)
	if err != nil {
		return nil, err
	}
	prompt, err := generator.LoadPrompt(cfg.Generation.PromptPath)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "Generator: %s, whisper model: %s, output: %s", gen.Name(), cfg.Whisper.ModelSize, cfg.Run.OutputDir)

	return processor.New(cfg, processor.Deps{
		Extractor:   newExtractor(cfg, exec, log),
		Transcriber: newTranscriber(cfg, exec, log),
		Normalizer:  norm,
		Generator:   gen,
		Logger:      log,
		Template:    tmpl,
		Prompt:      prompt,
	})
}

// loadTemplate reads the document template. A read failure is reported as an
// assembly failure so the CLI exits with the assembly code.
func loadTemplate(cfg *config.Config) (string, error) {
	tmpl, err := assembler.LoadTemplate(cfg.Document.TemplatePath)
	if err != nil {
		return "", &processor.StageError{Kind: processor.AssemblyError, Stage: "assemble", State: processor.StateInit, Err: err}
	}
	return tmpl, nil
}
