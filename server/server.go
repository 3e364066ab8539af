// Package server exposes the solver over HTTP.
//
// Routes:
//
//	POST /v1/solve   {"matrix": [[...]], "start": 0}  → cost, tours, stats
//	POST /v1/render  same body, ?format=svg|png|dot  → first optimal tour drawn
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus exposition
//
// Matrices use the JSON cost encoding of package tsp: integers for finite
// costs, "INF" or null for forbidden edges. Results are cached by
// cache.SolveKey, and each search runs under Config.SolveTimeout.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/littletsp/cache"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxCities    = 40
	DefaultSolveTimeout = 30 * time.Second
	DefaultMaxBodyBytes = 8 << 20
)

// Config holds server configuration.
type Config struct {
	Addr string // e.g. "127.0.0.1:8080" or "127.0.0.1:0" for a random port
	// MaxCities rejects larger instances with 413.
	MaxCities int
	// SolveTimeout bounds one search; exceeding it answers 504.
	SolveTimeout time.Duration
	// CacheTTL is the lifetime of cached results; zero keeps them forever.
	CacheTTL     time.Duration
	MaxBodyBytes int64
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxCities <= 0 {
		c.MaxCities = DefaultMaxCities
	}
	if c.SolveTimeout <= 0 {
		c.SolveTimeout = DefaultSolveTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return c
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg        Config
	cache      cache.Cache
	logger     *log.Logger
	metrics    *metrics
	httpServer *http.Server
	listener   net.Listener
}

// New creates a server (does not start it). A nil cache disables caching.
func New(cfg Config, c cache.Cache, logger *log.Logger) *Server {
	cfg = cfg.withDefaults()
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		cache:   c,
		logger:  logger,
		metrics: newMetrics(),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.SolveTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/render", s.handleRender)
	})

	return r
}

// Start listens and serves in the background, returning the actual address
// (useful with port 0).
func (s *Server) Start() (string, error) {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener
	actualAddr := listener.Addr().String()
	s.logger.Info("listening", "addr", actualAddr, "max_cities", s.cfg.MaxCities, "timeout", s.cfg.SolveTimeout)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "err", err)
		}
	}()

	return actualAddr, nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the
// cache.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	return s.cache.Close()
}
