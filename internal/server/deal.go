package server

import (
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"poolpower/internal/domain/entity"
	"poolpower/pkg/httpx/reply"
	"poolpower/pkg/rest"
)

type DealServer struct {
	catalog dealCatalog
}

func NewDealServer(catalog dealCatalog) DealServer {
	return DealServer{
		catalog: catalog,
	}
}

func (s DealServer) getV1Deals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	deals, err := s.catalog.ActiveDeals(ctx)
	if err != nil {
		return fmt.Errorf("catalog.ActiveDeals: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.DealList{
		Deals: lo.Map(deals, func(d entity.Deal, _ int) rest.Deal { return newRESTDeal(d) }),
	})

	return nil
}

func (s DealServer) getV1Deal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealIDFromPath(r)
	if err != nil {
		return err
	}

	deal, err := s.catalog.Deal(ctx, id)
	if err != nil {
		return fmt.Errorf("catalog.Deal: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal))

	return nil
}
