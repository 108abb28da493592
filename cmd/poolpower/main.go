package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"poolpower/internal/application"
	"poolpower/internal/config"
	"poolpower/pkg/contextx"
	"poolpower/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("poolpower failed", logx.Error(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "poolpower",
		Short: "Group-buying deals page with WhatsApp pool links",
		Long: `poolpower imports deals from a Google Sheet, serves the deals page and
turns every "start a pool" click into a pre-filled WhatsApp message.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newSyncCmd(),
	)

	return root
}

// withApplication loads the config, installs the logger and opens the
// application for the duration of fn.
func withApplication(
	cmd *cobra.Command,
	fn func(ctx context.Context, cfg config.Config, app *application.Application) error,
) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, err := logx.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logx.NewLogger: %w", err)
	}

	slog.SetDefault(log)

	ctx := contextx.WithLogger(cmd.Context(), log.With(slog.String("command", cmd.Name())))

	app, err := application.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("application.New: %w", err)
	}
	defer app.Close(ctx)

	return fn(ctx, cfg, app)
}
