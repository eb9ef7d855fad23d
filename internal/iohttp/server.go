// Package iohttp exposes the query engine as a JSON HTTP API.
package iohttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnweather/internal/iometrics"
	"github.com/gnames/gnweather/pkg/query"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves health, weather, statistics and metrics endpoints.
type Server struct {
	httpServer *http.Server
	engine     *query.Engine
	clock      clockwork.Clock
	timeout    time.Duration
	metrics    *iometrics.Metrics
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
}

// Option configures optional parts of the Server.
type Option func(*Server)

// WithClock sets the clock used for health timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithTimeout limits the time spent on one request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMetrics records requests in m and exposes g on /metrics.
func WithMetrics(m *iometrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates an HTTP server listening on addr.
func NewServer(addr string, engine *query.Engine, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		clock:    clockwork.NewRealClock(),
		timeout:  30 * time.Second,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// routes builds the router. Request IDs are set outside of the router,
// so they also reach 404 responses.
func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.observe)
	r.Use(s.withTimeout)

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/weather", s.handleWeather).Methods("GET")
	r.HandleFunc("/api/weather/stats", s.handleStats).Methods("GET")
	r.Handle("/metrics",
		promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}),
	).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return s.requestID(r)
}

// Start listens and serves until Shutdown. Returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return StartError(s.httpServer.Addr, err)
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
