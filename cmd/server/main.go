package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/harshithathangella/Collaborative-Canvas/internal/config"
	"github.com/harshithathangella/Collaborative-Canvas/internal/room"
	"github.com/harshithathangella/Collaborative-Canvas/internal/server"
	"github.com/harshithathangella/Collaborative-Canvas/internal/session"
	"github.com/harshithathangella/Collaborative-Canvas/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults used when empty)")
	flag.Parse()

	// Load configuration
	var (
		cfg *config.ServerConfig
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to load config:", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	// Set up structured logging
	logger := slog.New(newLogHandler(cfg.Logging))
	slog.SetDefault(logger)

	logger.Info("starting canvas server",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Handle shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Wire registry → hub → server
	registry := room.NewRegistry(logger)
	hub := session.NewHub(session.Config{
		SendBufferSize: cfg.WebSocket.SendBufferSize,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
		PingInterval:   cfg.WebSocket.PingInterval,
		PongTimeout:    cfg.WebSocket.PongTimeout,
	}, registry, logger)

	srv := server.New(server.Config{
		Addr:            fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, hub, logger)

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newLogHandler builds the slog handler selected by the logging config.
func newLogHandler(cfg config.LoggingConfig) slog.Handler {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}
