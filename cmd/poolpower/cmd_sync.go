package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"poolpower/internal/application"
	"poolpower/internal/config"
	"poolpower/internal/worker"
	"poolpower/pkg/contextx"
)

func newSyncCmd() *cobra.Command {
	var enqueue bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import the Deals sheet",
		Long: `sync imports the Deals sheet into storage. With --enqueue the import is
queued for the workers of a running server instead, which needs Redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(ctx context.Context, _ config.Config, app *application.Application) error {
				log := contextx.LoggerFromContextOrDefault(ctx)

				if enqueue {
					id, err := app.EnqueueSync(ctx, worker.ReasonCLI)
					if errors.Is(err, worker.ErrSyncAlreadyQueued) {
						log.Info("catalog sync already queued")
						return nil
					}

					if err != nil {
						return fmt.Errorf("app.EnqueueSync: %w", err)
					}

					log.Info("catalog sync queued", slog.String("task-id", id))

					return nil
				}

				if _, err := app.SyncNow(ctx); err != nil {
					return fmt.Errorf("app.SyncNow: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "queue the import for a running server")

	return cmd
}
