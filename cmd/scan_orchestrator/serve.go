package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/handlers/http"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/app"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic sweep scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			appContainer, err := app.NewApp(state.cfg)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				logger.Info("Starting scheduler...")
				appContainer.StartScheduler()
				<-ctx.Done()
				logger.Info("Stopping scheduler...")
				appContainer.StopScheduler()
				return nil
			})

			g.Go(func() error {
				logger.Info("Starting HTTP server on port %d", state.cfg.Server.HttpPort)
				return http.Run(ctx, appContainer, state.cfg)
			})

			err = g.Wait()
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Scan orchestrator stopped with error: %v", err)
				return err
			}

			logger.Info("Graceful shutdown completed")
			return nil
		},
	}
}
