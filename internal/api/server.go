// Package api provides the HTTP command server that feeds gestures to the dispatcher.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"gesturify/internal/config"
	"gesturify/internal/dispatcher"
	"gesturify/internal/gesture"
)

// CommandHandler handles one gesture command
type CommandHandler interface {
	Handle(ctx context.Context, req dispatcher.Request) dispatcher.Result
}

// Server provides the HTTP API for gesture commands
type Server struct {
	cfg     config.ServerConfig
	handler CommandHandler
	table   *gesture.Table
	logger  *log.Logger
	metrics *Metrics
	limiter *rate.Limiter
	maxBody int64
	routes  http.Handler
}

// NewServer creates a new API server. metrics may be nil.
func NewServer(cfg config.ServerConfig, handler CommandHandler, table *gesture.Table, logger *log.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Server{
		cfg:     cfg,
		handler: handler,
		table:   table,
		logger:  logger,
		metrics: metrics,
		maxBody: cfg.MaxBodyBytes,
	}
	if s.maxBody <= 0 {
		s.maxBody = 4096
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if table != nil {
		metrics.setGestures(table.Len())
	}
	s.routes = s.buildRouter()
	return s
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.routes
}

func (s *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(s.requestIDMiddleware)
	router.Use(s.accessLogMiddleware)
	router.Use(s.recoverMiddleware)
	router.Use(s.corsMiddleware)
	router.Use(s.authMiddleware)

	router.Get("/health", s.handleHealth)
	router.Get("/metrics", s.metrics.handler().ServeHTTP)
	router.Get("/api/gestures", s.handleGestures)
	router.With(s.rateLimitMiddleware).Post("/command", s.handleCommand)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}

// Start listens on the configured address and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Addr

	// Use tcp4 for the wildcard address to avoid IPv6-only binding issues on Windows
	network := "tcp"
	if strings.HasPrefix(addr, "0.0.0.0:") {
		network = "tcp4"
	}

	ln, err := net.Listen(network, addr)
	if err != nil {
		s.logger.Error("failed to listen", "addr", addr, "err", err)
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.routes,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("command server listening", "addr", ln.Addr().String(), "gestures", s.tableLen())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("command server stopped", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down command server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) tableLen() int {
	if s.table == nil {
		return 0
	}
	return s.table.Len()
}

// handleCommand handles POST /command {"gesture": "..."}
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req dispatcher.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid command body", "err", err, "request_id", RequestID(r.Context()))
		res := dispatcher.ValidationError("invalid request body")
		s.metrics.observeResult(res)
		respondJSON(w, res.HTTPStatus(), NewCommandResponse(res))
		return
	}

	res := s.handler.Handle(r.Context(), req)
	s.metrics.observeResult(res)
	respondJSON(w, res.HTTPStatus(), NewCommandResponse(res))
}

// handleGestures handles GET /api/gestures
func (s *Server) handleGestures(w http.ResponseWriter, r *http.Request) {
	entries := []gesture.Entry{}
	if s.table != nil {
		entries = s.table.Entries()
	}
	respondJSON(w, http.StatusOK, entries)
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
