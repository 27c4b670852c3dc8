package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// recoverer converts handler panics into the generic internal-error envelope.
// Internal detail is logged, never surfaced to the caller.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("server: handler panicked",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				s.metrics.RecordInternalError()
				writeError(w, http.StatusInternalServerError, "Internal server error", codeInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimiter applies a global token bucket across all requests.
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSec), s.cfg.RequestBurst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "Too many requests", codeRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
