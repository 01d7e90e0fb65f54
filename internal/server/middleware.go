package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type loggerKey struct{}

// Logger attaches a request scoped logger to the context and logs every
// completed request.
func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With(
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("remote_ip", req.RemoteAddr),
			)

			ctx := context.WithValue(req.Context(), loggerKey{}, reqLogger)
			req = req.WithContext(ctx)

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, req)

			reqLogger.Info("request served",
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(started)),
			)
		})
	}
}

// LoggerFrom returns the request scoped logger, or a no-op logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
