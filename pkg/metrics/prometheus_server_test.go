package metrics_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"poolpower/pkg/metrics"
)

//nolint:gochecknoglobals
var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "poolpower_test_exports_total",
	Help: "Counter used by the metrics server test.",
})

func TestPrometheusServer(t *testing.T) {
	rq := require.New(t)

	testCounter.Inc()

	testCases := []struct {
		name          string
		listenAddress string
		path          string
		endpoint      string
		statusCode    int
		wantBody      string
	}{
		{
			name:          "Default path",
			listenAddress: ":10010",
			endpoint:      "http://:10010/metrics",
			statusCode:    http.StatusOK,
			wantBody:      "poolpower_test_exports_total 1",
		},
		{
			name:          "Custom path",
			listenAddress: ":10015",
			path:          "/internal/metrics",
			endpoint:      "http://:10015/internal/metrics",
			statusCode:    http.StatusOK,
			wantBody:      "promhttp_metric_handler_requests_total",
		},
		{
			name:          "Invalid endpoint",
			listenAddress: ":10020",
			endpoint:      "http://:10020/invalid",
			statusCode:    http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			prometheusServer := metrics.NewPrometheusServer(tc.listenAddress, tc.path)

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return prometheusServer.Run(ctx)
			})

			// Wait for server to start.
			time.Sleep(time.Second)

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.endpoint, http.NoBody)
			rq.NoError(err)

			resp, err := http.DefaultClient.Do(req)
			rq.NoError(err)

			body, err := io.ReadAll(resp.Body)
			rq.NoError(err)
			resp.Body.Close()

			rq.Equal(tc.statusCode, resp.StatusCode)

			if tc.wantBody != "" {
				rq.Contains(string(body), tc.wantBody)
			}

			cancel()

			rq.NoError(g.Wait())
		})
	}
}
