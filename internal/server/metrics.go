package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	hostForm = "form"
	hostAPI  = "api"
)

//nolint:gochecknoglobals
var (
	poolLinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poolpower_pool_links_total",
			Help: "Messaging links handed out, by host",
		},
		[]string{"host"},
	)

	poolRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poolpower_pool_rejections_total",
			Help: "Activations rejected for an invalid quantity, by host",
		},
		[]string{"host"},
	)
)
