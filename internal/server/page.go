package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/internal/site"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/logx"
)

const formFieldQuantity = "quantity"

type pageRenderer interface {
	Render(w io.Writer, page site.Page) error
}

// PageServer serves the deals page and is the form host of the pool handler:
// posting a deal's form is one activation.
type PageServer struct {
	catalog  dealCatalog
	pools    poolHandler
	renderer pageRenderer
	page     site.Page
}

// NewPageServer takes page with everything but the deals filled in.
func NewPageServer(
	catalog dealCatalog,
	pools poolHandler,
	renderer pageRenderer,
	page site.Page,
) PageServer {
	return PageServer{
		catalog:  catalog,
		pools:    pools,
		renderer: renderer,
		page:     page,
	}
}

func (s PageServer) getIndex(w http.ResponseWriter, r *http.Request) error {
	return s.renderPage(w, r, http.StatusOK, "", "")
}

func (s PageServer) postDealPool(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := dealIDFromPath(r)
	if err != nil {
		return err
	}

	if err := r.ParseForm(); err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("r.ParseForm: %w", err),
			failure.WithCode(errcodes.ValidationError),
		)
	}

	// A form posted without the field is a dismissed prompt.
	answers, given := r.PostForm[formFieldQuantity]
	prompter := pool.NewFixedAnswer(lo.FirstOr(answers, ""), given)

	var navigator pool.LinkCollector

	if _, err := s.pools.Activate(ctx, id, prompter, &navigator); err != nil {
		if errors.Is(err, pool.ErrInvalidQuantity) {
			poolRejectionsTotal.WithLabelValues(hostForm).Inc()

			alert := lo.LastOr(prompter.Alerts(), pool.ValidationMessage)

			return s.renderPage(w, r, http.StatusUnprocessableEntity, alert, id)
		}

		return fmt.Errorf("pools.Activate: %w", err)
	}

	poolLinksTotal.WithLabelValues(hostForm).Inc()

	logger(ctx).Info("pool link issued", logx.DealID(id))

	http.Redirect(w, r, navigator.Last(), http.StatusSeeOther)

	return nil
}

func (s PageServer) renderPage(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	alert string,
	alertDealID value.DealID,
) error {
	deals, err := s.catalog.ActiveDeals(r.Context())
	if err != nil {
		return fmt.Errorf("catalog.ActiveDeals: %w", err)
	}

	page := s.page
	page.Deals = deals
	page.Alert = alert
	page.AlertDealID = alertDealID

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		return fmt.Errorf("renderer.Render: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)

	return nil
}
