package middleware

import (
	"net/http"
	"time"

	"formsight/pkg/logger"

	"go.uber.org/zap"
)

type loggingWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Logging writes one line per request. Websocket upgrades are passed through untouched.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Header.Get("Upgrade") == "websocket" {
			logger.Log.Debug("websocket upgrade", zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
			return
		}

		lw := &loggingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)

		logger.Log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", lw.status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", ClientIP(r)),
			zap.String("requestId", GetRequestID(r.Context())),
		)
	})
}
