package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.WebSocket.SendBufferSize != DefaultSendBufferSize {
		t.Errorf("SendBufferSize = %d, want %d", cfg.WebSocket.SendBufferSize, DefaultSendBufferSize)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
websocket:
  send_buffer_size: 64
logging:
  level: debug
  format: json
`)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.WebSocket.SendBufferSize != 64 {
		t.Errorf("SendBufferSize = %d, want 64", cfg.WebSocket.SendBufferSize)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %q/%q, want debug/json", cfg.Logging.Level, cfg.Logging.Format)
	}

	// Unset fields fall back to defaults.
	if cfg.WebSocket.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("MaxMessageSize = %d, want %d", cfg.WebSocket.MaxMessageSize, DefaultMaxMessageSize)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CANVAS_TEST_LEVEL", "warn")
	path := writeConfig(t, `
logging:
  level: ${CANVAS_TEST_LEVEL}
`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoad_FileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"bad port", func(c *ServerConfig) { c.Server.Port = -1 }},
		{"port too high", func(c *ServerConfig) { c.Server.Port = 70000 }},
		{"bad send buffer", func(c *ServerConfig) { c.WebSocket.SendBufferSize = -5 }},
		{"tiny message limit", func(c *ServerConfig) { c.WebSocket.MaxMessageSize = 16 }},
		{"ping slower than pong", func(c *ServerConfig) {
			c.WebSocket.PingInterval = c.WebSocket.PongTimeout
		}},
		{"bad level", func(c *ServerConfig) { c.Logging.Level = "loud" }},
		{"bad format", func(c *ServerConfig) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
