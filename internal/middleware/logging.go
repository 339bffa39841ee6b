package middleware

import (
	"net/http"
	"time"

	"github.com/nemesis-app/nemesis-server/pkg/logger"
)

// LoggingMiddleware logs one line per request with method, path, status and
// duration.
type LoggingMiddleware struct {
	log *logger.Logger
}

// NewLoggingMiddleware creates a request logging middleware.
func NewLoggingMiddleware(log *logger.Logger) *LoggingMiddleware {
	if log == nil {
		log = logger.NewDefault("http")
	}
	return &LoggingMiddleware{log: log}
}

// Handler returns the logging middleware handler.
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.log.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"user_id":     GetUserID(r.Context()),
		}).Info("request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
