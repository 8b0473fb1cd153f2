package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// whisperOutput mirrors the subset of whisper.cpp's -oj output we read.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp on audioPath and returns the recognised segments
// in chronological order. Silence yields an empty slice, not an error.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	model := t.ModelPath()
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("whisper model %s unavailable: %w", t.opts.ModelSize, err)
	}

	model, err := filepath.Abs(model)
	if err != nil {
		return nil, fmt.Errorf("resolve model path: %w", err)
	}

	// whisper runs inside the audio's directory so any side files it writes
	// stay in the work dir; it appends .json to the output prefix
	dir := filepath.Dir(audioPath)
	audioName := filepath.Base(audioPath)
	prefix := strings.TrimSuffix(audioName, filepath.Ext(audioName)) + ".whisper"
	jsonPath := filepath.Join(dir, prefix+".json")
	defer os.Remove(jsonPath)

	language := t.opts.Language
	if language == "" {
		language = "auto"
	}

	t.logger.Info(ctx, "Starting transcription with model %s (%d threads, language %s): %s",
		t.opts.ModelSize, t.opts.Threads, language, audioPath)

	// -oj: JSON output, -of: output prefix, -l: language or auto-detect
	args := []string{
		"-m", model,
		"-f", audioName,
		"-oj",
		"-of", prefix,
		"-l", language,
		"-t", strconv.Itoa(t.opts.Threads),
	}

	if _, err := t.executor.ExecuteInDir(ctx, dir, t.opts.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	segments, lang, err := parseOutput(data)
	if err != nil {
		return nil, err
	}

	if len(segments) == 0 {
		t.logger.Warn(ctx, "No speech segments detected in %s", audioPath)
	}
	t.logger.Info(ctx, "Transcription completed: %d segments, detected language %s", len(segments), orUnknown(lang))
	return segments, nil
}

func parseOutput(data []byte) ([]transcript.Segment, string, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, "", fmt.Errorf("decode whisper output: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(out.Transcription))
	for _, s := range out.Transcription {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if s.Offsets.To < s.Offsets.From {
			return nil, "", errors.New("decode whisper output: segment ends before it starts")
		}
		segments = append(segments, transcript.Segment{
			Start: time.Duration(s.Offsets.From) * time.Millisecond,
			End:   time.Duration(s.Offsets.To) * time.Millisecond,
			Text:  text,
		})
	}
	return segments, out.Result.Language, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
