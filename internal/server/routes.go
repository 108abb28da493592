package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"poolpower/internal/site"
	"poolpower/pkg/logx"
	"poolpower/pkg/middlewarex"
)

type RouterOptions struct {
	RequestTimeout      time.Duration
	LogFieldMaxLen      int
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
}

// NewRouter builds the public handler with the full middleware stack.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	if opts.SensitiveDataMasker == nil {
		opts.SensitiveDataMasker = logx.NewNopSensitiveDataMasker()
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middleware.RealIP,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.Metrics,
		middlewarex.RequestLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
	)

	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getIndex))
	r.Post("/deals/{id}/pool", handler(s.postDealPool))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(site.Static())))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/deals", func(r chi.Router) {
			r.Get("/", handler(s.getV1Deals))
			r.Get("/{id}", handler(s.getV1Deal))
		})
		r.Post("/pools", handler(s.postV1Pools))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(r.Context(), w, err)
		}
	}
}
