package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"pftracker/internal/shared/logging"
)

const (
	RequestIDHeader            = "X-Request-ID"
	RequestIDKey    ContextKey = "request_id"
)

// RequestID tags each request with an id, reusing a well-formed incoming
// X-Request-ID. The id is echoed in the response and attached to the
// request-scoped logger.
func RequestID(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), RequestIDKey, id)
			ctx = logging.NewContext(ctx, logger.With(logging.FieldRequestID, id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
