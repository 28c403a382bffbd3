package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mission-control/core/pkg/logger"
)

// RequestIDHeader carries the correlation id in requests and responses
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with a correlation id and stores a request-scoped
// logger in the context. An incoming X-Request-ID is reused.
func RequestID(log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := log.WithRequestID(requestID).ToContext(r.Context())
		next(w, r.WithContext(ctx))
	}
}
