package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"poolpower/internal/domain/service/catalog"
	"poolpower/internal/site"
	"poolpower/internal/worker"
)

var ErrRedisRequired = errors.New("REDIS_ADDRESS is not set")

// SyncNow imports the sheet in this process.
func (a *Application) SyncNow(ctx context.Context) (catalog.SyncReport, error) {
	return a.catalog.Sync(ctx)
}

// EnqueueSync hands the import to the asynq workers of a running server.
func (a *Application) EnqueueSync(ctx context.Context, reason string) (string, error) {
	if a.redis == nil {
		return "", ErrRedisRequired
	}

	client := a.asynqServer().NewClient()
	defer client.Close()

	return worker.NewEnqueuer(client).RequestSync(ctx, reason)
}

// Generate writes the static deals page into dir. Forms post to
// PUBLIC_BASE_URL so the page works from any static host.
func (a *Application) Generate(ctx context.Context, dir string) error {
	deals, err := a.catalog.ActiveDeals(ctx)
	if err != nil {
		return fmt.Errorf("catalog.ActiveDeals: %w", err)
	}

	if a.cfg.Site.PublicBaseURL == "" {
		logger(ctx).Warn("PUBLIC_BASE_URL is not set: forms of the exported page post to the static host")
	}

	page := a.Page()
	page.ActionBaseURL = strings.TrimRight(a.cfg.Site.PublicBaseURL, "/")
	page.Deals = deals

	if err := site.Generate(ctx, dir, page); err != nil {
		return fmt.Errorf("site.Generate: %w", err)
	}

	logger(ctx).Info("site generated", slog.String("dir", dir), slog.Int("deals", len(deals)))

	return nil
}
