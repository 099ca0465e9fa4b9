// Package web serves the greeting page to a browser or to the Wails asset
// server. Each WebSocket connection drives its own ui.Surface; the invoke
// endpoint exposes the command registry as JSON.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"github.com/greetdeck/greetdeck/internal/invoke"
	"github.com/greetdeck/greetdeck/internal/logging"
	"github.com/greetdeck/greetdeck/internal/ui"
)

//go:embed assets
var assetFS embed.FS

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// Server is the HTTP front end of the greeting page.
type Server struct {
	invoker  invoke.Invoker
	log      logger.Logger
	metrics  http.Handler
	upgrader websocket.Upgrader
	handler  http.Handler
	server   *http.Server
}

// NewServer builds the routes. addr is only used by ListenAndServe.
func NewServer(addr string, inv invoke.Invoker, opts ...Option) *Server {
	s := &Server{
		invoker: inv,
		log:     logging.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.HandlePage)
	mux.HandleFunc("GET /index.html", s.HandlePage)
	mux.Handle("GET /assets/", http.FileServerFS(assetFS))
	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.HandleFunc("POST /api/invoke/{command}", s.HandleInvoke)
	mux.HandleFunc("GET /ws", s.HandleWS)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}

	s.handler = mux
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes for embedding, e.g. in the Wails asset server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// HandlePage renders a page with the initial (empty) state. Live state is
// delivered over /ws.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.RenderState(w, ui.State{}); err != nil {
		s.log.Error(fmt.Sprintf("render page: %v", err))
	}
}

// HandleHealth reports liveness.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// HandleInvoke runs a command with the JSON object body as its arguments.
func (s *Server) HandleInvoke(w http.ResponseWriter, r *http.Request) {
	command := r.PathValue("command")

	var args invoke.Args
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("decode arguments: %v", err),
		})
		return
	}

	result, err := s.invoker.Invoke(r.Context(), command, args)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, invoke.ErrUnknownCommand):
			status = http.StatusNotFound
		case errors.Is(err, invoke.ErrInvalidArgs):
			status = http.StatusBadRequest
		}
		s.log.Warning(fmt.Sprintf("invoke %s: %v", command, err))
		writeJSON(w, status, map[string]string{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result": result,
	})
}

// ListenAndServe serves until Shutdown.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
