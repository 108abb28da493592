package handler

import (
	"context"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type dealCatalog interface {
	ActiveDeals(ctx context.Context) ([]entity.Deal, error)
}

type poolHandler interface {
	Activate(ctx context.Context, id value.DealID, p pool.Prompter, n pool.Navigator) (string, error)
}

// syncRequester queues a catalog sync; reason ends up in the logs.
type syncRequester interface {
	RequestSync(ctx context.Context, reason string) (string, error)
}

type Handler struct {
	catalog dealCatalog
	pools   poolHandler
	syncer  syncRequester
}

func New(catalog dealCatalog, pools poolHandler, syncer syncRequester) *Handler {
	return &Handler{
		catalog: catalog,
		pools:   pools,
		syncer:  syncer,
	}
}
