package server

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
	Deal(ctx context.Context, id value.DealID) (entity.Deal, error)
}

type poolHandler interface {
	Activate(ctx context.Context, id value.DealID, p pool.Prompter, n pool.Navigator) (string, error)
}

// Server joins the HTTP servers of the individual resources.
type Server struct {
	PageServer
	DealServer
	PoolServer
}

func NewServer(
	pageServer PageServer,
	dealServer DealServer,
	poolServer PoolServer,
) Server {
	return Server{
		PageServer: pageServer,
		DealServer: dealServer,
		PoolServer: poolServer,
	}
}
