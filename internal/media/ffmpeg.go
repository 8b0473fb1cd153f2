package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNoAudio is returned when ffmpeg succeeded but produced an empty file.
var ErrNoAudio = errors.New("ffmpeg produced no audio")

// ErrUnsupportedFormat is returned for an output extension with no codec mapping.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// audioCodecs maps the output extension to the ffmpeg encoder for it.
var audioCodecs = map[string]string{
	".wav":  "pcm_s16le",
	".flac": "flac",
}

// ExtractAudio converts the video's audio track to mono 16-bit audio at the
// configured sample rate, the input format whisper expects. The encoder
// follows audioPath's extension: PCM for .wav, FLAC for .flac.
func (e *implExtractor) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	codec, ok := audioCodecs[strings.ToLower(filepath.Ext(audioPath))]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(audioPath))
	}

	info, err := os.Stat(videoPath)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("open video: %s is a directory", videoPath)
	}

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video, -ac 1: mono, -y: overwrite a stale file from a failed attempt
	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", codec,
		"-ar", strconv.Itoa(e.opts.SampleRate),
		"-ac", "1",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.opts.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	out, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Errorf("stat extracted audio: %w", err)
	}
	if out.Size() == 0 {
		return ErrNoAudio
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s (%d bytes)", audioPath, out.Size())
	return nil
}

func (e *implExtractor) CheckAvailable() error {
	if _, err := e.executor.LookPath(e.opts.BinaryPath); err != nil {
		return fmt.Errorf("ffmpeg is not installed: %w", err)
	}
	return nil
}
