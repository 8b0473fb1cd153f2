package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Generate notes for videos as they are dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, flags.apply)
			if err != nil {
				return err
			}
			if maxConcurrent > 0 {
				cfg.Watch.MaxConcurrent = maxConcurrent
			}
			log := ctx.logger()
			runCtx := cmd.Context()

			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create watch directory %s: %w", dir, err)
			}

			proc, err := newPipeline(runCtx, cfg, log)
			if err != nil {
				return err
			}

			handler := func(ctx context.Context, path string) error {
				res, err := proc.Process(ctx, processor.Request{VideoPath: path})
				if err != nil {
					return err
				}
				if res.Empty {
					log.Warn(ctx, "%s: %v", filepath.Base(path), errEmptyTranscript)
					return nil
				}
				log.Info(ctx, "Notes generated: %s (%s)", res.Document, res.Elapsed.Round(time.Millisecond))
				return nil
			}

			w, err := watcher.New(watcher.Options{
				Dir:           dir,
				Extensions:    cfg.Watch.Extensions,
				MaxConcurrent: cfg.Watch.MaxConcurrent,
				SettleDelay:   cfg.Watch.SettleDelay,
			}, handler, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(runCtx, "Output: %s. Press Ctrl+C to stop", cfg.Run.OutputDir)
			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "Videos processed at once (default from config)")
	return cmd
}
