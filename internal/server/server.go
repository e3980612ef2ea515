// Package server exposes the websocket endpoint and health surface over
// HTTP and owns their lifecycle.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/harshithathangella/Collaborative-Canvas/internal/session"
	"github.com/harshithathangella/Collaborative-Canvas/internal/version"
)

// Config holds HTTP server settings.
type Config struct {
	Addr            string        // host:port to listen on
	ShutdownTimeout time.Duration // Grace period for in-flight requests
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves the /ws endpoint and /healthz.
type Server struct {
	cfg      Config
	hub      *session.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a server over the given hub.
func New(cfg Config, hub *session.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:    cfg,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The transport handshake carries no auth; rooms are reachable
			// by anyone who knows their id.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve listens and blocks until ctx is cancelled or the listener fails.
// Cancellation drains gracefully: the HTTP server stops accepting, every
// websocket connection is closed, and rooms empty through the ordinary
// disconnect path.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Handler: s.routes(ctx),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)

		s.hub.CloseAll()
		return nil
	})

	err = g.Wait()
	s.logger.Info("server stopped")
	return err
}

// routes builds the HTTP mux. The serve context is handed to each
// websocket session so shutdown reaches long-lived connections.
func (s *Server) routes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
			return
		}
		s.hub.ServeConn(ctx, ws)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := s.hub.Stats()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"version": version.Version,
			"hub": map[string]any{
				"connections":     stats.Connections,
				"rooms":           stats.Rooms,
				"events_received": stats.EventsReceived,
				"events_dropped":  stats.EventsDropped,
				"parse_errors":    stats.ParseErrors,
			},
		})
	})

	return mux
}
