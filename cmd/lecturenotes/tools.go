package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

const previewChars = 500

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	var output string
	var sampleRate int

	cmd := &cobra.Command{
		Use:   "extract-audio <video>",
		Short: "Extract mono PCM audio from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, func(cfg *config.Config) {
				if sampleRate > 0 {
					cfg.FFmpeg.SampleRate = sampleRate
				}
			})
			if err != nil {
				return err
			}

			video := args[0]
			if output == "" {
				output = siblingPath(video, "_audio.wav")
			}

			ext := newExtractor(cfg, executor.New(), ctx.logger())
			if err := ext.CheckAvailable(); err != nil {
				return err
			}
			if err := ext.ExtractAudio(cmd.Context(), video, output); err != nil {
				return fmt.Errorf("extract audio: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Audio extracted: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output audio path (default: <video>_audio.wav)")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 0, "Sample rate in Hz (default from config)")
	return cmd
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var output, model, language string
	var textOnly bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio>",
		Short: "Transcribe audio with whisper.cpp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, func(cfg *config.Config) {
				if model != "" {
					cfg.Whisper.ModelSize = model
				}
				if language != "" {
					cfg.Whisper.Language = language
				}
			})
			if err != nil {
				return err
			}

			audio := args[0]
			tr := newTranscriber(cfg, executor.New(), ctx.logger())
			segments, err := tr.Transcribe(cmd.Context(), audio)
			if err != nil {
				return fmt.Errorf("transcribe: %w", err)
			}

			if textOnly {
				fmt.Fprintln(cmd.OutOrStdout(), transcript.PlainText(segments))
				return nil
			}

			if output == "" {
				output = siblingPath(audio, ".srt")
			}
			if err := os.WriteFile(output, []byte(transcript.FormatSRT(segments)), 0644); err != nil {
				return fmt.Errorf("write transcript: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transcript written: %s (%d segments)\n", output, len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output SRT path (default: <audio>.srt)")
	cmd.Flags().StringVar(&model, "model", "", "Whisper model size")
	cmd.Flags().StringVar(&language, "language", "", "Spoken language code")
	cmd.Flags().BoolVar(&textOnly, "text-only", false, "Print plain text instead of writing an SRT file")
	return cmd
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var output, docxPath string
	var preview bool

	cmd := &cobra.Command{
		Use:   "clean <transcript.srt|transcript.txt>",
		Short: "Normalize a raw transcript into paragraphs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, nil)
			if err != nil {
				return err
			}
			log := ctx.logger()

			input := args[0]
			segments, err := readSegments(input)
			if err != nil {
				return err
			}

			norm, err := newNormalizer(cfg)
			if err != nil {
				return err
			}
			cleaned, stats := norm.Normalize(segments)
			log.Info(cmd.Context(), "Removed %d fillers, %d stop words, %d artifacts from %d tokens",
				stats.FillersRemoved, stats.StopsRemoved, stats.ArtifactsRemoved, stats.TokensIn)
			if cleaned.Empty() {
				return fmt.Errorf("%s: %w", input, errEmptyTranscript)
			}

			text := cleaned.Text()
			out := cmd.OutOrStdout()
			if preview {
				fmt.Fprintln(out, previewText(text))
				fmt.Fprintf(out, "\nLength: %d characters\n", utf8.RuneCountInString(text))
			}

			if output == "" {
				output = siblingPath(input, "_cleaned.txt")
			}
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				return fmt.Errorf("write cleaned transcript: %w", err)
			}
			fmt.Fprintf(out, "Cleaned transcript written: %s (%d paragraphs)\n", output, stats.Paragraphs)

			if docxPath != "" {
				if err := export.TranscriptToDocx(stem(input), cleaned, docxPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Word document written: %s\n", docxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output text path (default: <input>_cleaned.txt)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print the start of the cleaned text")
	cmd.Flags().StringVar(&docxPath, "docx", "", "Also export the cleaned transcript as a Word document")
	return cmd
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var output, title, provider, docxPath string
	var templateOnly bool

	cmd := &cobra.Command{
		Use:   "generate <cleaned.txt>",
		Short: "Generate a LaTeX notes document from a cleaned transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, func(cfg *config.Config) {
				if templateOnly {
					provider = config.ProviderTemplate
				}
				setProvider(cfg, provider)
			})
			if err != nil {
				return err
			}
			log := ctx.logger()

			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}
			cleaned := transcript.ParseCleaned(string(data))
			if cleaned.Empty() {
				return fmt.Errorf("%s: %w", input, errEmptyTranscript)
			}

			gen, err := newGenerator(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			prompt, err := generator.LoadPrompt(cfg.Generation.PromptPath)
			if err != nil {
				return err
			}
			tmpl, err := loadTemplate(cfg)
			if err != nil {
				return err
			}

			body, err := generateOnce(cmd.Context(), cfg, gen, generator.Request{
				Prompt:     prompt,
				Transcript: cleaned.Text(),
				Title:      title,
			})
			if err != nil {
				return err
			}

			doc, err := assembler.Assemble(tmpl, assembler.EscapeLaTeX(title), currentDate(cfg), body)
			if err != nil {
				return &processor.StageError{Kind: processor.AssemblyError, Stage: "assemble", Err: err}
			}

			if output == "" {
				output = siblingPath(input, ".tex")
			}
			if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "LaTeX notes generated: %s (%s)\n", output, gen.Name())
			if docxPath != "" {
				if err := export.NotesToDocx(title, body, docxPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Word document written: %s\n", docxPath)
			}
			fmt.Fprintf(out, "Compile with: pdflatex %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .tex path (default: <input>.tex)")
	cmd.Flags().StringVar(&title, "title", "Lecture Notes", "Document title")
	cmd.Flags().StringVar(&provider, "provider", "", "Generation provider (deepseek, gemini, template)")
	cmd.Flags().BoolVar(&templateOnly, "template-only", false, "Use the offline template generator")
	cmd.Flags().StringVar(&docxPath, "docx", "", "Also export the notes as a Word document")
	return cmd
}

// generateOnce makes a single bounded generation call. The full pipeline
// retries; the standalone tool reports the first failure.
func generateOnce(ctx context.Context, cfg *config.Config, gen generator.Generator, req generator.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Generation.Timeout)
	defer cancel()

	body, err := gen.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate notes with %s: %w", gen.Name(), err)
	}
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("generate notes with %s: empty body", gen.Name())
	}
	return body, nil
}

// readSegments loads an SRT file, or treats each non-empty line of a text
// file as an untimed segment.
func readSegments(path string) ([]transcript.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".srt") {
		segments, err := transcript.ParseSRT(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return segments, nil
	}

	var segments []transcript.Segment
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, transcript.Segment{Text: line})
		}
	}
	return segments, nil
}

func previewText(text string) string {
	if utf8.RuneCountInString(text) <= previewChars {
		return text
	}
	return string([]rune(text)[:previewChars]) + "..."
}

func currentDate(cfg *config.Config) string {
	return time.Now().Format(cfg.Document.DateFormat)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// siblingPath replaces the extension of path with suffix.
func siblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
