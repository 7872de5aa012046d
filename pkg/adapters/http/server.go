package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Navigator is the presenter surface the remote API drives.
// Every call must be safe from arbitrary goroutines.
type Navigator interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Advance(ctx context.Context) (domain.Snapshot, error)
	Retreat(ctx context.Context) (domain.Snapshot, error)
	GoTo(ctx context.Context, n int) (domain.Snapshot, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer exposes g on GET /metrics. Without it the route is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithAllowAllOrigins accepts cross-origin requests from anywhere instead of localhost only.
func WithAllowAllOrigins(allow bool) Option {
	return func(s *Server) { s.allowAll = allow }
}

// Server serves the remote control API.
type Server struct {
	Nav     Navigator
	Streams *StreamManager

	logger   *slog.Logger
	gatherer prometheus.Gatherer
	allowAll bool
	upgrader websocket.Upgrader
	router   chi.Router
	http     *http.Server
}

// NewServer builds the router for nav.
func NewServer(nav Navigator, opts ...Option) *Server {
	s := &Server{
		Nav:    nav,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.upgrader = websocket.Upgrader{CheckOrigin: s.originAllowed}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: localOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.allowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.getState)
		r.Post("/next", s.postNext)
		r.Post("/prev", s.postPrev)
		r.Post("/goto/{n}", s.postGoTo)
		r.Get("/stream", s.stream)
	})
	return r
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Nav.Snapshot(r.Context())
	s.respond(w, "state", snap, err)
}

func (s *Server) postNext(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Nav.Advance(r.Context())
	s.respond(w, "next", snap, err)
}

func (s *Server) postPrev(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Nav.Retreat(r.Context())
	s.respond(w, "prev", snap, err)
}

func (s *Server) postGoTo(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slide index must be an integer")
		return
	}
	snap, err := s.Nav.GoTo(r.Context(), n)
	s.respond(w, "goto", snap, err)
}

func (s *Server) respond(w http.ResponseWriter, op string, snap domain.Snapshot, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, snap)
	case errors.Is(err, domain.ErrInvalidSlideIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("remote request failed", "op", op, "error", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
	}
}

// Publish fans snap out to every stream subscriber without blocking.
func (s *Server) Publish(snap domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("snapshot encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(data)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("remote control listening", "addr", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		s.Streams.Close()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
