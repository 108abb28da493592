package worker

import (
	"context"
	"log/slog"
	"time"

	"poolpower/pkg/contextx"
)

// Refresher syncs the catalog on a fixed interval inside the serving
// process. It stands in for the asynq scheduler when Redis is not configured.
type Refresher struct {
	syncer   catalogSyncer
	interval time.Duration
	trigger  chan string
}

func NewRefresher(syncer catalogSyncer, interval time.Duration) *Refresher {
	return &Refresher{
		syncer:   syncer,
		interval: interval,
		trigger:  make(chan string, 1),
	}
}

// RequestSync asks Run for an extra sync. Only one request is held at a time.
func (r *Refresher) RequestSync(ctx context.Context, reason string) (string, error) {
	select {
	case r.trigger <- reason:
		logger(ctx).Info("catalog sync requested", slog.String("reason", reason))
		return "in-process", nil
	default:
		return "", ErrSyncAlreadyQueued
	}
}

// Run blocks until ctx is done. Failed syncs are logged by the syncer and
// retried on the next tick.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger(ctx).Info("catalog refresher started", slog.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("catalog refresher stopped")
			return nil
		case <-ticker.C:
			r.sync(ctx, ReasonSchedule)
		case reason := <-r.trigger:
			r.sync(ctx, reason)
		}
	}
}

func (r *Refresher) sync(ctx context.Context, reason string) {
	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String("reason", reason)))

	_, _ = r.syncer.Sync(ctx)
}
