package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"poolpower/internal/domain"
	"poolpower/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection refused")
	err := fmt.Errorf("repo.ListActive: %w",
		domain.WrapError(cause, errcodes.CatalogUnavailable, "failed to list deals"))

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.CatalogUnavailable, code)
	rq.True(domain.IsAppError(err))
	rq.ErrorIs(err, cause)
	rq.Equal("failed to list deals", domain.PublicMessage(err))
	rq.EqualError(err, "repo.ListActive: failed to list deals: connection refused")

	rq.ErrorIs(err, domain.NewError(errcodes.CatalogUnavailable, "other message"))
	rq.NotErrorIs(err, domain.NewError(errcodes.DealNotFound, "failed to list deals"))

	_, ok = domain.GetCode(cause)
	rq.False(ok)
	rq.Empty(domain.PublicMessage(cause))
}
