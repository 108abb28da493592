package server

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"poolpower/internal/domain"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/httpx/reply"
)

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.InvalidQuantity:    http.StatusBadRequest,
	errcodes.InvalidDealID:      http.StatusBadRequest,
	errcodes.DealNotFound:       http.StatusNotFound,
	errcodes.CatalogUnavailable: http.StatusServiceUnavailable,
}

// replyError answers with the status of a known domain code and falls back
// to the generic reply for everything else.
func replyError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			reply.Coded(ctx, w, status, appErr.Code, appErr.Message)
			return
		}
	}

	reply.Error(ctx, w, err)
}
