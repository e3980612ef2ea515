package session

import "time"

// Config holds per-connection websocket settings.
type Config struct {
	SendBufferSize int           // Outbound queue length per connection
	MaxMessageSize int64         // Read limit for inbound frames (bytes)
	WriteTimeout   time.Duration // Write deadline per outbound frame
	PingInterval   time.Duration // How often the server pings
	PongTimeout    time.Duration // Max silence before the read deadline trips
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		SendBufferSize: 256,
		MaxMessageSize: 1 << 20, // 1 MiB; point batches are small
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		PongTimeout:    75 * time.Second,
	}
}

// HubStats contains runtime statistics.
type HubStats struct {
	Connections    int
	Rooms          int
	EventsReceived int64
	EventsDropped  int64
	ParseErrors    int64
}
