package server

import (
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/httpx/reply"
	"poolpower/pkg/httpx/req"
	"poolpower/pkg/logx"
	"poolpower/pkg/rest"
)

// PoolServer is the JSON host of the pool handler.
type PoolServer struct {
	pools poolHandler
}

func NewPoolServer(pools poolHandler) PoolServer {
	return PoolServer{
		pools: pools,
	}
}

func (s PoolServer) postV1Pools(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PoolRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	id, err := value.ParseDealID(request.DealID)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseDealID: %w", err),
			failure.WithCode(errcodes.InvalidDealID),
		)
	}

	prompter := pool.NewFixedAnswer("", false)
	if request.Quantity != nil {
		prompter = pool.NewFixedAnswer(request.Quantity.String(), true)
	}

	var navigator pool.LinkCollector

	link, err := s.pools.Activate(ctx, id, prompter, &navigator)
	if err != nil {
		if errors.Is(err, pool.ErrInvalidQuantity) {
			poolRejectionsTotal.WithLabelValues(hostAPI).Inc()
		}

		return fmt.Errorf("pools.Activate: %w", err)
	}

	poolLinksTotal.WithLabelValues(hostAPI).Inc()

	logger(ctx).Info("pool link issued", logx.DealID(id))

	reply.JSON(ctx, w, http.StatusOK, rest.PoolLink{URL: link})

	return nil
}
