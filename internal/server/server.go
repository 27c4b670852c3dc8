// Package server exposes the scoring, churn, and value engines over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/medspasync/reconcile/internal/churn"
	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/match"
	"github.com/medspasync/reconcile/internal/monitoring"
	"github.com/medspasync/reconcile/internal/store"
	"github.com/medspasync/reconcile/internal/value"
)

// Server wires the engines and the run store into an HTTP handler.
type Server struct {
	scorer  *match.Scorer
	churn   *churn.Predictor
	value   *value.Quantifier
	store   store.Store // nil disables run persistence
	metrics *monitoring.Collector
	cfg     config.ServerConfig
}

// New builds a Server. st may be nil when persistence is disabled.
func New(scorer *match.Scorer, cp *churn.Predictor, vq *value.Quantifier, st store.Store, metrics *monitoring.Collector, cfg config.ServerConfig) *Server {
	return &Server{
		scorer:  scorer,
		churn:   cp,
		value:   vq,
		store:   st,
		metrics: metrics,
		cfg:     cfg,
	}
}

// Handler builds the chi router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
	}))
	if s.cfg.RequestsPerSec > 0 {
		r.Use(s.rateLimiter())
	}

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/test", s.handleTest)
	r.Get("/metrics", s.handleMetrics)
	r.Post("/predict", s.handlePredict)
	r.Post("/batch-predict", s.handleBatchPredict)
	r.Post("/churn-risk", s.handleChurnRisk)
	r.Post("/value-metrics", s.handleValueMetrics)

	return r
}

// Response envelope codes.
const (
	codeValidationError = "validation_error"
	codeInternalError   = "internal_server_error"
	codeRateLimited     = "rate_limited"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, Code: code})
}
