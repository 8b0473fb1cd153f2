package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/batch"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var extensions []string
	var parallel int
	var report string

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Generate notes for every video in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.resolve(cmd, flags.apply)
			if err != nil {
				return err
			}
			log := ctx.logger()

			if len(extensions) == 0 {
				extensions = cfg.Watch.Extensions
			}

			proc, err := newPipeline(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}

			runner := batch.New(proc, batch.Options{Extensions: extensions, Parallel: parallel}, log)
			sum, err := runner.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sum.Items) == 0 {
				fmt.Fprintf(out, "No supported video files found in %s\n", args[0])
				return nil
			}
			fmt.Fprintln(out, batch.RenderTable(sum))

			if report != "" {
				if err := batch.WriteReport(sum, report); err != nil {
					return err
				}
				fmt.Fprintf(out, "Report written: %s\n", report)
			}

			fmt.Fprintf(out, "Batch complete: %d/%d succeeded\n", sum.Succeeded, len(sum.Items))
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d videos failed", sum.Failed, len(sum.Items))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "Video extensions to process, e.g. mp4,mkv (default from config)")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Videos processed at once")
	cmd.Flags().StringVar(&report, "report", "", "Write an .xlsx report of the batch to this path")
	return cmd
}
