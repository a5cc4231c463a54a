package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate every sheet row without AI feedback, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		run, err := a.batch.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s: %d written, %d failed, %d already annotated\n",
			run.ID, run.ProcessedCount, run.FailedCount, run.SkippedCount)
		return nil
	},
}
