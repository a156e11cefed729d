package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/app"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

func newSweepCommand(state *cliState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Queue a scan for every idle target, for use from an external cron",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			appContainer, err := app.NewApp(state.cfg)
			if err != nil {
				return err
			}
			scheduler := appContainer.SchedulerService(ctx)

			if !force {
				decision, err := scheduler.SweepDecision(ctx, time.Now())
				if err != nil {
					return err
				}
				if !decision.Due {
					logger.Info("Sweep skipped: %s", decision.Reason)
					fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", decision.Reason)
					return nil
				}
			}

			queued, err := scheduler.RunPeriodicSweep(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "queued %d scan jobs\n", queued)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "sweep even when scanning is disabled or the interval has not elapsed")
	return cmd
}
