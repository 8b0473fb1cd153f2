package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type commandContext struct {
	configFlag *string
	getenv     func(string) string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	log logger.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		getenv:     os.Getenv,
	}
}

// ensureConfig reads .env and the config file once per process.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := config.LoadDotEnv(); err != nil {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// resolve applies command flag overrides and environment credentials on top
// of the loaded config, validates the result and builds the logger.
func (c *commandContext) resolve(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if apply != nil {
		apply(cfg)
	}
	cfg.ApplyEnv(c.getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	c.log = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	return cfg, nil
}

func (c *commandContext) logger() logger.Logger {
	if c.log == nil {
		return logger.Discard()
	}
	return c.log
}

// setProvider switches the generation provider. Model, endpoint and keys in
// the file belong to the previous provider and are dropped.
func setProvider(cfg *config.Config, provider string) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || provider == cfg.Generation.Provider {
		return
	}
	cfg.Generation.Provider = provider
	cfg.Generation.Model = ""
	cfg.Generation.BaseURL = ""
	cfg.Generation.APIKeys = nil
}
