package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Run        RunConfig        `yaml:"run"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Generation GenerationConfig `yaml:"generation"`
	Document   DocumentConfig   `yaml:"document"`
	Watch      WatchConfig      `yaml:"watch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type RunConfig struct {
	OutputDir         string `yaml:"output_dir"`
	KeepIntermediates bool   `yaml:"keep_intermediates"`
	// Resume skips stages whose artifact is already present in the work dir.
	Resume *bool `yaml:"resume"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	ModelSize  string `yaml:"model_size"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	SampleRate  int    `yaml:"sample_rate"`
	AudioFormat string `yaml:"audio_format"`
}

type NormalizerConfig struct {
	FillerWords        []string      `yaml:"filler_words"`
	StopWords          []string      `yaml:"stop_words"`
	ArtifactPatterns   []string      `yaml:"artifact_patterns"`
	SilenceThreshold   time.Duration `yaml:"silence_threshold"`
	MaxParagraphTokens int           `yaml:"max_paragraph_tokens"`
}

type GenerationConfig struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	BaseURL        string        `yaml:"base_url"`
	APIKeys        []string      `yaml:"api_keys"`
	PromptPath     string        `yaml:"prompt_path"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	// TemplateSections caps how many paragraphs the offline generator turns into sections.
	TemplateSections int `yaml:"template_sections"`
}

type DocumentConfig struct {
	TemplatePath string `yaml:"template_path"`
	DateFormat   string `yaml:"date_format"`
	TitlePrefix  string `yaml:"title_prefix"`
}

type WatchConfig struct {
	Extensions    []string      `yaml:"extensions"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Provider names accepted by generation.provider.
const (
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
	ProviderTemplate = "template"
)

// ModelSizes lists the whisper model sizes the transcriber knows how to resolve.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large"}

// AudioFormats lists the lossless containers ffmpeg writes and whisper reads.
var AudioFormats = []string{"wav", "flac"}

// ResumeEnabled reports whether stage resume is on; it defaults to true.
func (r RunConfig) ResumeEnabled() bool {
	return r.Resume == nil || *r.Resume
}

// RequiresAPIKey reports whether the configured provider needs a credential.
func (g GenerationConfig) RequiresAPIKey() bool {
	return g.Provider != ProviderTemplate
}

func (c *Config) Validate() error {
	if c.Run.OutputDir == "" {
		return fmt.Errorf("run.output_dir is required")
	}
	if !validModelSize(c.Whisper.ModelSize) {
		return fmt.Errorf("whisper.model_size must be one of %s, got %q", strings.Join(ModelSizes, ", "), c.Whisper.ModelSize)
	}
	switch c.Generation.Provider {
	case ProviderDeepSeek, ProviderGemini, ProviderTemplate:
	default:
		return fmt.Errorf("generation.provider must be one of deepseek, gemini, template, got %q", c.Generation.Provider)
	}
	if c.Normalizer.SilenceThreshold < 0 {
		return fmt.Errorf("normalizer.silence_threshold must not be negative")
	}
	if c.Normalizer.MaxParagraphTokens < 0 {
		return fmt.Errorf("normalizer.max_paragraph_tokens must not be negative")
	}
	if c.Generation.MaxAttempts < 0 {
		return fmt.Errorf("generation.max_attempts must not be negative")
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	c.FFmpeg.AudioFormat = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.FFmpeg.AudioFormat), "."))
	if c.FFmpeg.AudioFormat == "" {
		c.FFmpeg.AudioFormat = "wav"
	}
	if !contains(AudioFormats, c.FFmpeg.AudioFormat) {
		return fmt.Errorf("ffmpeg.audio_format must be one of %s, got %q", strings.Join(AudioFormats, ", "), c.FFmpeg.AudioFormat)
	}
	if c.Generation.Model == "" {
		c.Generation.Model = defaultModel(c.Generation.Provider)
	}
	if c.Generation.BaseURL == "" && c.Generation.Provider == ProviderDeepSeek {
		c.Generation.BaseURL = "https://api.deepseek.com"
	}
	if c.Generation.Timeout == 0 {
		c.Generation.Timeout = 5 * time.Minute
	}
	if c.Generation.MaxAttempts == 0 {
		c.Generation.MaxAttempts = 3
	}
	if c.Generation.InitialBackoff == 0 {
		c.Generation.InitialBackoff = 2 * time.Second
	}
	if c.Generation.MaxBackoff == 0 {
		c.Generation.MaxBackoff = 30 * time.Second
	}
	if c.Generation.TemplateSections == 0 {
		c.Generation.TemplateSections = 5
	}
	if c.Document.DateFormat == "" {
		c.Document.DateFormat = "January 02, 2006"
	}
	if c.Document.TitlePrefix == "" {
		c.Document.TitlePrefix = "Lecture Notes: "
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 1
	}
	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func validModelSize(size string) bool {
	return contains(ModelSizes, size)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderDeepSeek:
		return "deepseek-reasoner"
	default:
		return ""
	}
}
