package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags pipelineFlags
	var title string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "lecturenotes <video>",
		Short:         "Turn a lecture recording into LaTeX notes",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runVideo(cmd, ctx, &flags, args[0], title)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.register(rootCmd)
	rootCmd.Flags().StringVar(&title, "title", "", "Document title (default: derived from the file name)")

	rootCmd.AddCommand(newExtractAudioCommand(ctx))
	rootCmd.AddCommand(newTranscribeCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))

	return rootCmd
}

// pipelineFlags are the overrides shared by every command that runs the full pipeline.
type pipelineFlags struct {
	output       string
	keep         bool
	whisperModel string
	language     string
	provider     string
	noResume     bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory")
	cmd.Flags().BoolVarP(&f.keep, "keep-intermediates", "k", false, "Keep audio and transcript files")
	cmd.Flags().StringVar(&f.whisperModel, "whisper-model", "", "Whisper model size (tiny, base, small, medium, large)")
	cmd.Flags().StringVar(&f.language, "language", "", "Spoken language code, empty for auto-detect")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Generation provider (deepseek, gemini, template)")
	cmd.Flags().BoolVar(&f.noResume, "no-resume", false, "Redo every stage even if its output exists")
}

func (f *pipelineFlags) apply(cfg *config.Config) {
	if f.output != "" {
		cfg.Run.OutputDir = f.output
	}
	if f.keep {
		cfg.Run.KeepIntermediates = true
	}
	if f.whisperModel != "" {
		cfg.Whisper.ModelSize = f.whisperModel
	}
	if f.language != "" {
		cfg.Whisper.Language = f.language
	}
	if f.noResume {
		off := false
		cfg.Run.Resume = &off
	}
	setProvider(cfg, f.provider)
}

func runVideo(cmd *cobra.Command, cc *commandContext, flags *pipelineFlags, video, title string) error {
	ctx := cmd.Context()
	cfg, err := cc.resolve(cmd, flags.apply)
	if err != nil {
		return err
	}
	log := cc.logger()

	proc, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	res, err := proc.Process(ctx, processor.Request{VideoPath: video, Title: title})
	if err != nil {
		return err
	}
	if res.Empty {
		return fmt.Errorf("%s: %w", video, errEmptyTranscript)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Notes generated: %s\n", res.Document)
	if len(res.Resumed) > 0 {
		fmt.Fprintf(out, "Reused from a previous run: %v\n", res.Resumed)
	}
	fmt.Fprintf(out, "Compile with: pdflatex %s\n", res.Document)
	return nil
}
