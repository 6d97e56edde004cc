// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/aeris/internal/domain/model"
	"github.com/okian/aeris/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// LookupFlight resolves a flight number with telemetry and METAR.
	LookupFlight(ctx context.Context, number string) (*model.Result, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
	statsHandler   *StatsHandler
	flightHandler  *FlightHandler
	log            logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.metricsHandler = NewMetricsHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.flightHandler = NewFlightHandler(deps, s.log)
	return s
}

// Register attaches all API routes and the request-ID middleware to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Use(RequestIDMiddleware(s.log))

	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/metrics", MetricsMiddleware(s.metricsHandler.ServeHTTP, "metrics")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	r.HandleFunc("/api/flight/{flightNumber}", MetricsMiddleware(s.flightHandler.HandleGetFlight, "flight")).
		Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}; the body shape does not depend on status.
func writeError(w http.ResponseWriter, status int, err error) {
	d := model.Describe(err)
	if d == nil {
		d = &model.ErrorDescriptor{Message: http.StatusText(status)}
	}
	writeJSON(w, status, d)
}
