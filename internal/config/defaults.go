package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost            = ""
	DefaultPort            = 8080
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSendBufferSize  = 256
	DefaultMaxMessageSize  = 1 << 20
	DefaultWriteTimeout    = 10 * time.Second
	DefaultPingInterval    = 30 * time.Second
	DefaultPongTimeout     = 75 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

func (c *ServerConfig) applyDefaults() {
	// Listener defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// WebSocket defaults
	if c.WebSocket.SendBufferSize == 0 {
		c.WebSocket.SendBufferSize = DefaultSendBufferSize
	}
	if c.WebSocket.MaxMessageSize == 0 {
		c.WebSocket.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.WebSocket.WriteTimeout == 0 {
		c.WebSocket.WriteTimeout = DefaultWriteTimeout
	}
	if c.WebSocket.PingInterval == 0 {
		c.WebSocket.PingInterval = DefaultPingInterval
	}
	if c.WebSocket.PongTimeout == 0 {
		c.WebSocket.PongTimeout = DefaultPongTimeout
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}
