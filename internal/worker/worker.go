// Package worker runs catalog syncs in the background: as asynq tasks when
// Redis is configured, or on an in-process ticker otherwise.
package worker

import (
	"context"

	"poolpower/internal/domain/service/catalog"
	"poolpower/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type catalogSyncer interface {
	Sync(ctx context.Context) (catalog.SyncReport, error)
}
