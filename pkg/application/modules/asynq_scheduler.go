package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

// AsynqSchedule enqueues Task every time Cronspec fires.
type AsynqSchedule struct {
	Cronspec string
	Task     *asynq.Task
}

// AsynqScheduler shares the connection settings of AsynqServer.
type AsynqScheduler struct {
	AsynqServer
}

func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	schedules ...AsynqSchedule,
) error {
	scheduler := asynq.NewScheduler(s.redisConnection(), &asynq.SchedulerOpts{
		Logger: s.Logger,
	})

	for _, sch := range schedules {
		entryID, err := scheduler.Register(sch.Cronspec, sch.Task)
		if err != nil {
			return fmt.Errorf("scheduler.Register(%q): %w", sch.Cronspec, err)
		}

		logger(ctx).Info("task scheduled",
			slog.String("entry-id", entryID),
			slog.String("cronspec", sch.Cronspec),
			slog.String("task-type", sch.Task.Type()),
		)
	}

	g.Go(func() error {
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("scheduler.Start: %w", err)
		}

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress))

		<-ctx.Done()

		scheduler.Shutdown()

		logger(ctx).Info("asynq scheduler stopped", slog.String("redis-address", s.RedisAddress))

		return nil
	})

	return nil
}
