// Package http exposes the metric pipeline to the presentation layer along
// with health, readiness, and Prometheus endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenfleet/esb-district-metrics/internal/pipeline"
)

// MetricsProvider answers selection queries and reports readiness.
type MetricsProvider interface {
	CheckReadiness(ctx context.Context) error
	Compute(state, city string) pipeline.Result
	States() []string
	Cities(state string) []string
}

// Server exposes the selection API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	provider   MetricsProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 selection routes.
func NewServer(addr string, provider MetricsProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/metrics", s.handleSelection)
	mux.HandleFunc("GET /api/v1/states", s.handleStates)
	mux.HandleFunc("GET /api/v1/cities", s.handleCities)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.provider.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleSelection answers GET /api/v1/metrics?state=S&city=C. A selection
// matching no districts is a normal 200 with null city metrics; only missing
// query parameters are client errors.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	city := r.URL.Query().Get("city")
	if state == "" || city == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "query parameters state and city are required",
		})
		return
	}

	writeJSON(w, http.StatusOK, s.provider.Compute(state, city))
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	states := s.provider.States()
	if states == nil {
		states = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"states": states})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "query parameter state is required",
		})
		return
	}
	cities := s.provider.Cities(state)
	if cities == nil {
		cities = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"cities": cities})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
