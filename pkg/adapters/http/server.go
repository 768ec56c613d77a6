// Package http exposes stored analysis pools over a small REST surface.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/debeat/essentia/internal/logging"
	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/ports"
)

// Server serves pool snapshots from a ports.PoolStore.
type Server struct {
	store   ports.PoolStore
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler mounts a metrics endpoint at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// NewHandler creates the HTTP handler over store.
func NewHandler(store ports.PoolStore, opts ...Option) http.Handler {
	s := &Server{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/pools", s.listPools)
	r.Get("/pools/{id}", s.getPool)
	r.Get("/pools/{id}/descriptors", s.getDescriptors)
	r.Delete("/pools/{id}", s.deletePool)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) listPools(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list pools", http.StatusInternalServerError)
		s.logger.Error("list pools failed", "error", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, map[string]any{"pools": ids})
}

func (s *Server) getPool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrPoolNotFound) {
			http.Error(w, "Pool not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load pool", http.StatusInternalServerError)
		s.logger.Error("load pool failed", "id", id, "error", err)
		return
	}
	s.writeJSON(w, poolio.Capture(p))
}

func (s *Server) getDescriptors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrPoolNotFound) {
			http.Error(w, "Pool not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load pool", http.StatusInternalServerError)
		s.logger.Error("load pool failed", "id", id, "error", err)
		return
	}

	type descriptor struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Single bool   `json:"single"`
	}
	var ds []descriptor
	for _, d := range poolio.Capture(p).Descriptors {
		ds = append(ds, descriptor{Name: d.Name, Type: d.Type, Single: d.Single})
	}
	if ds == nil {
		ds = []descriptor{}
	}
	s.writeJSON(w, map[string]any{"descriptors": ds})
}

func (s *Server) deletePool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete pool", http.StatusInternalServerError)
		s.logger.Error("delete pool failed", "id", id, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
