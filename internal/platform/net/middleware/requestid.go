// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"

	"packrat/internal/platform/logger"
	pnet "packrat/internal/platform/net"

	"github.com/google/uuid"
)

// RequestID assigns a request id (honoring an inbound X-Request-ID) and
// stamps it on the context and the response header
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := pnet.WithRequestID(r.Context(), id)
		ctx = logger.WithRequest(ctx, id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
