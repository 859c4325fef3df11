package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

const requestIDKey contextKey = "request_id"

// RequestLogger присваивает запросу X-Request-ID (или берет входящий)
// и логирует метод, путь, статус и длительность
func RequestLogger(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))

			duration := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			default:
				logger.Info("%s %s - status=%d, duration=%s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			}
		})
	}
}

// GetRequestID извлекает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
