package contextx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"poolpower/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testTraceIDEmpty contextx.TraceID

	testTraceIDNotEmpty := contextx.TraceID("test-trace-id")

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Equal(testTraceIDEmpty, traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	ctx = contextx.WithTraceID(ctx, testTraceIDNotEmpty)

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.Equal(testTraceIDNotEmpty, traceID)
	rq.NoError(err)
}

func TestParseTraceID(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{name: "xid", input: contextx.NewTraceID().String(), wantOK: true},
		{name: "uuid", input: "3f1c2a4e-9b7d-4c1e-8a2f-0d6b5e4c3a21", wantOK: true},
		{name: "Dotted", input: "edge.req_42", wantOK: true},
		{name: "Empty", input: ""},
		{name: "Too long", input: strings.Repeat("a", 65)},
		{name: "Newline", input: "abc\nlevel=ERROR"},
		{name: "Space", input: "abc def"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(_ *testing.T) {
			traceID, ok := contextx.ParseTraceID(tc.input)
			rq.Equal(tc.wantOK, ok)

			if tc.wantOK {
				rq.Equal(tc.input, traceID.String())
			} else {
				rq.Empty(traceID)
			}
		})
	}
}
