package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type LoggerMiddleware struct {
	log *logrus.Logger
}

func NewLoggerMiddleware(log *logrus.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{log: log}
}

// Handle tags the request with an ID and logs it once it completes.
func (m *LoggerMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		next.ServeHTTP(rec, r.WithContext(ctx))

		entry := m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"latency":    time.Since(start).String(),
			"remote_ip":  r.RemoteAddr,
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request")
			return
		}
		entry.Info("request")
	})
}
