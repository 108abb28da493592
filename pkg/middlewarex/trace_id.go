package middlewarex

import (
	"net/http"

	"poolpower/pkg/contextx"
)

const headerNameTraceID = "X-Trace-Id"

// TraceID keeps a well-formed X-Trace-Id from the caller and issues a new
// one otherwise. The id is echoed in the response.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID, ok := contextx.ParseTraceID(r.Header.Get(headerNameTraceID))
		if !ok {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
