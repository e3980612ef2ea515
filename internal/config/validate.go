package config

import "fmt"

// Validate checks the configuration for invalid values. Defaults are
// expected to have been applied already.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.WebSocket.SendBufferSize < 1 {
		return fmt.Errorf("websocket.send_buffer_size must be positive, got %d", c.WebSocket.SendBufferSize)
	}
	if c.WebSocket.MaxMessageSize < 1024 {
		return fmt.Errorf("websocket.max_message_size must be at least 1024, got %d", c.WebSocket.MaxMessageSize)
	}
	if c.WebSocket.PingInterval >= c.WebSocket.PongTimeout {
		return fmt.Errorf("websocket.ping_interval (%v) must be shorter than pong_timeout (%v)",
			c.WebSocket.PingInterval, c.WebSocket.PongTimeout)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}
