package config

import "time"

// ServerConfig is the root configuration for a canvas server instance.
type ServerConfig struct {
	Server    ListenConfig    `yaml:"server"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ListenConfig holds the HTTP listener settings.
type ListenConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// WebSocketConfig holds per-connection websocket settings.
type WebSocketConfig struct {
	SendBufferSize int           `yaml:"send_buffer_size"` // Outbound queue length per connection
	MaxMessageSize int64         `yaml:"max_message_size"` // Inbound frame read limit (bytes)
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	PingInterval   time.Duration `yaml:"ping_interval"`
	PongTimeout    time.Duration `yaml:"pong_timeout"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
