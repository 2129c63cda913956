package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/hgshop/internal/telemetry"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger logs one entry per request. 5xx log at error, 4xx at warn.
func StructuredLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			level := zapcore.InfoLevel
			if ww.Status() >= 500 {
				level = zapcore.ErrorLevel
			} else if ww.Status() >= 400 {
				level = zapcore.WarnLevel
			}

			telemetry.WithTrace(r.Context(), logger).Log(level, "HTTP request completed",
				zap.String("http.request.method", r.Method),
				zap.String("http.route", RoutePattern(r)),
				zap.String("url.path", r.URL.Path),
				zap.Int("http.response.status_code", ww.Status()),
				zap.Int("http.response.body.size", ww.BytesWritten()),
				zap.Duration("duration", duration),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("client.address", r.RemoteAddr),
			)
		})
	}
}

// RoutePattern prefers the chi route pattern over the raw path.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
