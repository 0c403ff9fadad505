// Package server exposes the category service, backend settings, health
// and metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/appstore/internal/category"
	"github.com/vietddude/appstore/internal/core/domain"
	"github.com/vietddude/appstore/internal/infra/operation"
)

const requestIDHeader = "X-Request-ID"

// CategoryService is the subset of the category provider the server uses.
type CategoryService interface {
	GetCategories(ctx context.Context) []domain.Category
	State() category.CellState
	Fallback() bool
}

// HealthSource reports operation server health.
type HealthSource interface {
	GetHealth() operation.HealthStatus
}

// Server provides the HTTP API.
type Server struct {
	categories CategoryService
	ops        HealthSource
	servers    domain.Servers
	router     *mux.Router
	server     *http.Server
	listener   net.Listener
}

// NewServer creates a new HTTP server.
func NewServer(categories CategoryService, ops HealthSource, servers domain.Servers, port int) *Server {
	s := &Server{
		categories: categories,
		ops:        ops,
		servers:    servers,
		router:     mux.NewRouter(),
	}

	s.router.Use(requestID)
	s.router.HandleFunc("/api/categories", s.handleCategories).Methods(http.MethodGet)
	s.router.HandleFunc("/api/servers", s.handleServers).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/health/detailed", s.handleDetailed).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the server address so that bind errors surface before
// serving starts.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start starts the HTTP server, binding first if Listen was not called.
// It returns http.ErrServerClosed after Stop.
func (s *Server) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	return s.server.Serve(s.listener)
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.categories.GetCategories(r.Context()))
}

func (s *Server) handleServers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.servers)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := buildReport(s.categories, s.ops)

	code := http.StatusOK
	if report.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": string(report.Status)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildReport(s.categories, s.ops))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// requestID tags every request with an ID, reusing the caller's if present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", id,
			"duration", time.Since(start),
		)
	})
}
