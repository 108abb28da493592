package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"poolpower/internal/domain"
	"poolpower/pkg/application/modules"
	"poolpower/pkg/contextx"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/logx"
)

const (
	TypeCatalogSync = "catalog:sync"

	QueueDefault = "default"

	catalogSyncMaxRetry = 3
	catalogSyncUnique   = time.Minute
)

// Reasons a sync was requested, carried in the task payload for the logs.
const (
	ReasonSchedule = "schedule"
	ReasonBot      = "bot"
	ReasonCLI      = "cli"
)

type catalogSyncPayload struct {
	Reason string `json:"reason"`
}

func NewCatalogSyncTask(reason string) (*asynq.Task, error) {
	payload, err := jsoniter.Marshal(catalogSyncPayload{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeCatalogSync,
		payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(catalogSyncMaxRetry),
		asynq.Unique(catalogSyncUnique),
	), nil
}

type CatalogSyncHandler struct {
	syncer catalogSyncer
}

func NewCatalogSyncHandler(syncer catalogSyncer) CatalogSyncHandler {
	return CatalogSyncHandler{
		syncer: syncer,
	}
}

// Handler registers the task on an asynq server module.
func (h CatalogSyncHandler) Handler() modules.AsynqHandler {
	return modules.AsynqHandler{
		Pattern: TypeCatalogSync,
		Handle:  h.Handle,
	}
}

// Handle runs one sync. A sheet that cannot be parsed is not retried; it
// needs a fix in the sheet, not another attempt.
func (h CatalogSyncHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload catalogSyncPayload
	if len(t.Payload()) > 0 {
		if err := jsoniter.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("jsoniter.Unmarshal: %v: %w", err, asynq.SkipRetry)
		}
	}

	// The task id doubles as the trace id of everything the sync logs.
	traceID := contextx.NewTraceID()
	if taskID, ok := asynq.GetTaskID(ctx); ok {
		traceID = contextx.TraceID(taskID)
	}

	ctx = contextx.WithTraceID(ctx, traceID)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		logx.Stringer(logx.FieldTraceID, traceID),
		slog.String(logx.FieldTaskType, t.Type()),
		slog.String("reason", payload.Reason),
	))

	if _, err := h.syncer.Sync(ctx); err != nil {
		if code, ok := domain.GetCode(err); ok && code == errcodes.InvalidSheet {
			return fmt.Errorf("syncer.Sync: %v: %w", err, asynq.SkipRetry)
		}

		return fmt.Errorf("syncer.Sync: %w", err)
	}

	return nil
}
