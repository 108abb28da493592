package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"poolpower/pkg/metrics"
)

// MetricServer exposes Prometheus metrics. Path defaults to /metrics.
type MetricServer struct {
	ListenAddress string
	Path          string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	prometheusServer := metrics.NewPrometheusServer(
		m.ListenAddress,
		m.Path,
	)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
