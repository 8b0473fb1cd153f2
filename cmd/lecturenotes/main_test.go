package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if args == nil {
		args = []string{}
	}
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"empty transcript", fmt.Errorf("lecture.mp4: %w", errEmptyTranscript), exitEmpty},
		{"extraction", &processor.StageError{Kind: processor.ExtractionError, Err: errors.New("no audio")}, exitExtraction},
		{"transcription", &processor.StageError{Kind: processor.TranscriptionError, Err: errors.New("model missing")}, exitTranscription},
		{"generation", &processor.StageError{Kind: processor.GenerationError, Attempts: 3, Err: errors.New("rate limited")}, exitGeneration},
		{"assembly", &processor.StageError{Kind: processor.AssemblyError, Err: errors.New("no body placeholder")}, exitAssembly},
		{"filesystem", &processor.StageError{Kind: processor.FilesystemError, Err: errors.New("disk full")}, exitFilesystem},
		{"wrapped stage error", fmt.Errorf("run: %w", &processor.StageError{Kind: processor.GenerationError, Err: errors.New("x")}), exitGeneration},
		{"aborted", &processor.AbortedError{State: processor.StateTranscribed, Err: context.Canceled}, exitAborted},
		{"cancelled", context.Canceled, exitAborted},
		{"other", errors.New("bad flag"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommandTree(t *testing.T) {
	root := newRootCommand()
	want := []string{"extract-audio", "transcribe", "clean", "generate", "batch", "watch"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"output", "keep-intermediates", "whisper-model", "language", "title", "provider", "no-resume"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("root flag --%s missing", flag)
		}
	}
	if root.PersistentFlags().ShorthandLookup("c") == nil {
		t.Error("persistent -c flag missing")
	}
}

func TestRootWithoutArgsPrintsHelp(t *testing.T) {
	stdout, _, err := execute(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "lecturenotes") {
		t.Errorf("help output missing command name:\n%s", stdout)
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, _, err := execute(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "clean", "x.srt")
	if err == nil {
		t.Fatal("Execute() should fail for a missing explicit config")
	}
	if exitCode(err) != exitFailure {
		t.Errorf("exitCode() = %d, want %d", exitCode(err), exitFailure)
	}
}

func TestUnreadableTemplateIsAssemblyFailure(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "document:\n  template_path: "+filepath.Join(dir, "missing.tex")+"\n")

	input := filepath.Join(dir, "lecture_cleaned.txt")
	writeFile(t, input, "Sorting puts items in order.")
	video := filepath.Join(dir, "lecture.mp4")
	writeFile(t, video, "video")

	tests := []struct {
		name string
		args []string
	}{
		{"full run", []string{"-c", cfgPath, video, "--provider", "template", "-o", filepath.Join(dir, "out")}},
		{"generate", []string{"-c", cfgPath, "generate", input, "--template-only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if got := exitCode(err); got != exitAssembly {
				t.Fatalf("exitCode() = %d (err %v), want %d", got, err, exitAssembly)
			}
			if !strings.Contains(err.Error(), "assemble") {
				t.Errorf("error %q should name the stage", err)
			}
		})
	}
}

func TestPipelineFlagsApply(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	flags := pipelineFlags{
		output:       "notes",
		keep:         true,
		whisperModel: "small",
		language:     "en",
		provider:     "gemini",
		noResume:     true,
	}
	flags.apply(cfg)

	if cfg.Run.OutputDir != "notes" || !cfg.Run.KeepIntermediates {
		t.Errorf("run section not overridden: %+v", cfg.Run)
	}
	if cfg.Run.ResumeEnabled() {
		t.Error("--no-resume should disable resume")
	}
	if cfg.Whisper.ModelSize != "small" || cfg.Whisper.Language != "en" {
		t.Errorf("whisper section not overridden: %+v", cfg.Whisper)
	}
	if cfg.Generation.Provider != config.ProviderGemini || cfg.Generation.Model != "" {
		t.Errorf("provider switch should reset model, got %+v", cfg.Generation)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q after revalidation", cfg.Generation.Model)
	}
}

func TestSetProviderKeepsSettingsForSameProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.Model = "deepseek-chat"
	cfg.Generation.APIKeys = []string{"k"}

	setProvider(cfg, " DeepSeek ")
	if cfg.Generation.Model != "deepseek-chat" || len(cfg.Generation.APIKeys) != 1 {
		t.Errorf("same provider should keep settings, got %+v", cfg.Generation)
	}

	setProvider(cfg, "")
	if cfg.Generation.Provider != config.ProviderDeepSeek {
		t.Errorf("empty provider should be ignored, got %q", cfg.Generation.Provider)
	}
}

const sampleSRT = `1
00:00:00,000 --> 00:00:02,000
Um today we cover sorting

2
00:00:02,100 --> 00:00:04,000
uh merge sort is stable

3
00:00:10,000 --> 00:00:12,000
[Music] quicksort is fast on average
`

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lecture.srt")
	writeFile(t, input, sampleSRT)

	stdout, _, err := execute(t, "clean", input, "--preview")
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "lecture_cleaned.txt"))
	if err != nil {
		t.Fatalf("cleaned output not written: %v", err)
	}
	want := "today we cover sorting merge sort is stable\n\nquicksort is fast on average"
	if string(data) != want {
		t.Errorf("cleaned text = %q, want %q", data, want)
	}
	if !strings.Contains(stdout, "Length: ") {
		t.Errorf("preview missing length line:\n%s", stdout)
	}
}

func TestCleanCommandDocx(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lecture.txt")
	writeFile(t, input, "um the heap property\n\nuh heaps back priority queues\n")
	docx := filepath.Join(dir, "lecture.docx")

	if _, _, err := execute(t, "clean", input, "-o", filepath.Join(dir, "out.txt"), "--docx", docx); err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if info, err := os.Stat(docx); err != nil || info.Size() == 0 {
		t.Errorf("docx not written: %v", err)
	}
}

func TestCleanCommandEmptyTranscript(t *testing.T) {
	input := filepath.Join(t.TempDir(), "silence.srt")
	writeFile(t, input, "1\n00:00:00,000 --> 00:00:02,000\n[Music]\n")

	_, _, err := execute(t, "clean", input)
	if got := exitCode(err); got != exitEmpty {
		t.Errorf("exitCode() = %d (err %v), want %d", got, err, exitEmpty)
	}
}

func TestGenerateTemplateOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lecture_cleaned.txt")
	writeFile(t, input, "Sorting puts items in order.\n\nThe key idea is divide and conquer.")
	output := filepath.Join(dir, "notes.tex")

	stdout, _, err := execute(t, "generate", input, "--template-only", "--title", "Sorting & Searching", "-o", output)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	for _, want := range []string{`\title{Sorting \& Searching}`, `\section{Topic 1}`, `\section{Topic 2}`, `\textbf{key}`, `\end{document}`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(doc, "@@") {
		t.Error("document has unsubstituted placeholders")
	}
	if !strings.Contains(stdout, "(template)") {
		t.Errorf("stdout should name the generator:\n%s", stdout)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "blank.txt")
	writeFile(t, input, "\n\n  \n")

	_, _, err := execute(t, "generate", input, "--template-only")
	if got := exitCode(err); got != exitEmpty {
		t.Errorf("exitCode() = %d, want %d", got, exitEmpty)
	}
}

func TestBatchEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := execute(t, "batch", dir, "--provider", "template", "-o", filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("batch error = %v", err)
	}
	if !strings.Contains(stdout, "No supported video files") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestReadSegmentsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "first line\n\n  second line  \n")

	segs, err := readSegments(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 || segs[0].Text != "first line" || segs[1].Text != "second line" {
		t.Errorf("readSegments() = %+v", segs)
	}
}

func TestPreviewText(t *testing.T) {
	short := "short text"
	if got := previewText(short); got != short {
		t.Errorf("previewText(short) = %q", got)
	}

	long := strings.Repeat("é", previewChars+10)
	got := previewText(long)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != previewChars+3 {
		t.Errorf("previewText(long) has %d runes", len([]rune(got)))
	}
}

func TestSiblingPath(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"/v/lecture.mp4", "_audio.wav", "/v/lecture_audio.wav"},
		{"audio.wav", ".srt", "audio.srt"},
		{"noext", ".tex", "noext.tex"},
	}
	for _, tt := range tests {
		if got := siblingPath(tt.path, tt.suffix); got != tt.want {
			t.Errorf("siblingPath(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}
