// Package modules wraps long running servers so they start and stop with an
// errgroup and a context.
package modules

import "poolpower/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
