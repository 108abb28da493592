package server

import (
	"fmt"
	"net/http"
	"net/url"

	"git.appkode.ru/pub/go/failure"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/rest"
)

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		ID:               deal.ID.String(),
		ItemName:         deal.ItemName,
		ShortDescription: deal.ShortDescription,
		TargetQty:        deal.TargetQty,
		EstPricePerItem:  deal.EstPricePerItem,
		ImageURL:         deal.ImageURL,
	}
}

// dealIDFromPath reads the {id} segment. chi routes on RawPath when the id
// holds an escaped reserved character such as %2F, and then the segment is
// still escaped.
func dealIDFromPath(r *http.Request) (value.DealID, error) {
	raw := r.PathValue("id")

	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(raw)
		if err != nil {
			return "", failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("url.PathUnescape: %w", err),
				failure.WithCode(errcodes.InvalidDealID),
			)
		}

		raw = unescaped
	}

	id, err := value.ParseDealID(raw)
	if err != nil {
		return "", failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseDealID: %w", err),
			failure.WithCode(errcodes.InvalidDealID),
		)
	}

	return id, nil
}
