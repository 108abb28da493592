// Package metrics exposes the default Prometheus registry over HTTP.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"poolpower/pkg/contextx"
	"poolpower/pkg/logx"
)

const (
	DefaultPath = "/metrics"

	httpServerReadHeaderTimeout = 5 * time.Second
	httpServerShutdownTimeout   = 5 * time.Second
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type PrometheusServer struct {
	listenAddress string
	path          string
}

// NewPrometheusServer serves metrics on path, DefaultPath when empty.
func NewPrometheusServer(
	listenAddress string,
	path string,
) PrometheusServer {
	if path == "" {
		path = DefaultPath
	}

	return PrometheusServer{
		listenAddress: listenAddress,
		path:          path,
	}
}

func (p PrometheusServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.Handle(p.path, promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
	))

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              p.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpServerShutdownTimeout) //nolint:govet
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info("prometheus server started",
		slog.String("address", p.listenAddress),
		slog.String("path", p.path),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("prometheus server stopped")

	return nil
}
