package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = "config.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvDeepSeekKey = "DEEPSEEK_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvLogLevel    = "LECTURENOTES_LOG_LEVEL"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			OutputDir: "output",
		},
		Whisper: WhisperConfig{
			ModelSize: "base",
		},
		Normalizer: NormalizerConfig{
			FillerWords:        []string{"um", "uh", "uhm", "ah", "er", "erm", "hmm", "mm", "like"},
			StopWords:          []string{"okay", "alright", "basically", "actually"},
			ArtifactPatterns:   []string{`^\[.*\]$`, `^\(.*\)$`, `^♪+$`},
			SilenceThreshold:   3 * time.Second,
			MaxParagraphTokens: 120,
		},
		Generation: GenerationConfig{
			Provider: ProviderDeepSeek,
		},
	}
}

// Load reads path on top of Default and validates the result.
// A missing file at DefaultPath is not an error; any other missing path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv copies credentials and overrides from lookup into cfg.
// Keys already set in the file win over the environment.
func (c *Config) ApplyEnv(lookup func(string) string) {
	if len(c.Generation.APIKeys) == 0 {
		var raw string
		switch c.Generation.Provider {
		case ProviderDeepSeek:
			raw = lookup(EnvDeepSeekKey)
		case ProviderGemini:
			raw = lookup(EnvGeminiKey)
		}
		c.Generation.APIKeys = splitKeys(raw)
	}
	if lvl := strings.TrimSpace(lookup(EnvLogLevel)); lvl != "" {
		c.Logging.Level = lvl
	}
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
