package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/trailhead"
)

const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under trailhead.RequestIDKey
// and echoes it in the X-Request-Id response header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), trailhead.RequestIDKey, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID retrieves the ID RequestID set for the request ctx belongs to.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(trailhead.RequestIDKey).(string)
	return id
}
