package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

var ErrSyncAlreadyQueued = errors.New("catalog sync already queued")

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer hands catalog syncs to the asynq workers.
type Enqueuer struct {
	client taskEnqueuer
}

func NewEnqueuer(client taskEnqueuer) Enqueuer {
	return Enqueuer{
		client: client,
	}
}

// RequestSync queues a sync and returns the task id. A sync queued within
// the last minute is reused and reported as already queued.
func (e Enqueuer) RequestSync(ctx context.Context, reason string) (string, error) {
	task, err := NewCatalogSyncTask(reason)
	if err != nil {
		return "", err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return "", ErrSyncAlreadyQueued
	}

	if err != nil {
		return "", fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("catalog sync queued", slog.String("task-id", info.ID), slog.String("reason", reason))

	return info.ID, nil
}
