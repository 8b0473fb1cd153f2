package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.Run.OutputDir = "" },
			wantErr: true,
		},
		{
			name:    "unknown model size",
			mutate:  func(c *Config) { c.Whisper.ModelSize = "huge" },
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Generation.Provider = "openai" },
			wantErr: true,
		},
		{
			name:    "negative silence threshold",
			mutate:  func(c *Config) { c.Normalizer.SilenceThreshold = -time.Second },
			wantErr: true,
		},
		{
			name:    "flac audio",
			mutate:  func(c *Config) { c.FFmpeg.AudioFormat = ".FLAC" },
			wantErr: false,
		},
		{
			name:    "lossy audio format",
			mutate:  func(c *Config) { c.FFmpeg.AudioFormat = "mp3" },
			wantErr: true,
		},
		{
			name:    "negative attempts",
			mutate:  func(c *Config) { c.Generation.MaxAttempts = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.FFmpeg.AudioFormat != "wav" {
		t.Errorf("AudioFormat = %q, want wav", cfg.FFmpeg.AudioFormat)
	}
	if cfg.FFmpeg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", cfg.FFmpeg.SampleRate)
	}
	if cfg.Generation.Model != "deepseek-reasoner" {
		t.Errorf("Model = %q, want deepseek-reasoner", cfg.Generation.Model)
	}
	if cfg.Generation.BaseURL != "https://api.deepseek.com" {
		t.Errorf("BaseURL = %q", cfg.Generation.BaseURL)
	}
	if cfg.Generation.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Generation.MaxAttempts)
	}
	if cfg.Document.DateFormat != "January 02, 2006" {
		t.Errorf("DateFormat = %q", cfg.Document.DateFormat)
	}
	if !cfg.Run.ResumeEnabled() {
		t.Error("resume should default to enabled")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
run:
  output_dir: "notes"
  keep_intermediates: true
  resume: false

whisper:
  model_size: "small"
  language: "en"

normalizer:
  filler_words: ["um", "uh"]
  stop_words: []
  silence_threshold: 4s
  max_paragraph_tokens: 80

generation:
  provider: "gemini"
  max_attempts: 5
  initial_backoff: 100ms

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Run.OutputDir != "notes" {
		t.Errorf("OutputDir = %v, want %v", cfg.Run.OutputDir, "notes")
	}
	if !cfg.Run.KeepIntermediates {
		t.Error("KeepIntermediates should be true")
	}
	if cfg.Run.ResumeEnabled() {
		t.Error("resume should be disabled")
	}
	if cfg.Whisper.ModelSize != "small" {
		t.Errorf("ModelSize = %v, want small", cfg.Whisper.ModelSize)
	}
	if cfg.Normalizer.SilenceThreshold != 4*time.Second {
		t.Errorf("SilenceThreshold = %v, want 4s", cfg.Normalizer.SilenceThreshold)
	}
	if len(cfg.Normalizer.StopWords) != 0 {
		t.Errorf("StopWords = %v, want empty", cfg.Normalizer.StopWords)
	}
	if cfg.Generation.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.Generation.Model)
	}
	if cfg.Generation.InitialBackoff != 100*time.Millisecond {
		t.Errorf("InitialBackoff = %v", cfg.Generation.InitialBackoff)
	}
	if cfg.Generation.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Generation.MaxAttempts)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Run.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", cfg.Run.OutputDir)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDeepSeekKey: "ds-key",
		EnvGeminiKey:   "g1, g2 ,",
		EnvLogLevel:    "debug",
	}
	lookup := func(k string) string { return env[k] }

	cfg := Default()
	cfg.ApplyEnv(lookup)
	if len(cfg.Generation.APIKeys) != 1 || cfg.Generation.APIKeys[0] != "ds-key" {
		t.Errorf("APIKeys = %v, want [ds-key]", cfg.Generation.APIKeys)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}

	cfg = Default()
	cfg.Generation.Provider = ProviderGemini
	cfg.ApplyEnv(lookup)
	if len(cfg.Generation.APIKeys) != 2 || cfg.Generation.APIKeys[1] != "g2" {
		t.Errorf("APIKeys = %v, want [g1 g2]", cfg.Generation.APIKeys)
	}

	cfg = Default()
	cfg.Generation.APIKeys = []string{"from-file"}
	cfg.ApplyEnv(lookup)
	if cfg.Generation.APIKeys[0] != "from-file" {
		t.Errorf("file key should win, got %v", cfg.Generation.APIKeys)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("LECTURENOTES_TEST_KEY=abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LECTURENOTES_TEST_KEY", "")
	os.Unsetenv("LECTURENOTES_TEST_KEY")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("LECTURENOTES_TEST_KEY"); got != "abc" {
		t.Errorf("LECTURENOTES_TEST_KEY = %q, want abc", got)
	}
}
