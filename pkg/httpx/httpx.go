// Package httpx holds helpers for outgoing HTTP calls.
package httpx

import "poolpower/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
