package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

const maxTraceIDLen = 64

type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID accepts ids propagated by callers: up to 64 letters, digits,
// '-', '_' or '.'. Anything else is not trusted into the logs.
func ParseTraceID(s string) (TraceID, bool) {
	if s == "" || len(s) > maxTraceIDLen {
		return "", false
	}

	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return "", false
		}
	}

	return TraceID(s), true
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
