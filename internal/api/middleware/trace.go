// Package middleware provides HTTP middleware for the gateway's inbound
// server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/avaolo/agri-gateway/internal/api/shared"
)

// Trace adds a trace ID to the request context and logs the start of
// every request. Apply it early in the chain so all downstream handlers
// and log lines carry the ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		w.Header().Set("X-Trace-Id", traceID)

		slog.Debug("request started",
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
