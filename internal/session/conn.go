package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn wraps one websocket connection with a buffered outbound queue. The
// hub's read loop owns the inbound side; the write pump goroutine owns all
// writes, so no two goroutines ever touch the socket's write half at once.
type Conn struct {
	ws     *websocket.Conn
	cfg    Config
	logger *slog.Logger

	send   chan []byte
	done   chan struct{}
	onDrop func() // invoked when an outbound event is dropped

	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, cfg Config, logger *slog.Logger, onDrop func()) *Conn {
	if onDrop == nil {
		onDrop = func() {}
	}

	return &Conn{
		ws:     ws,
		cfg:    cfg,
		logger: logger,
		send:   make(chan []byte, cfg.SendBufferSize),
		done:   make(chan struct{}),
		onDrop: onDrop,
	}
}

// Send marshals the event and enqueues it without blocking. Reports false
// if the queue is full or the connection is closing; the event is dropped
// in both cases.
func (c *Conn) Send(event any) bool {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal outbound event", "error", err)
		return false
	}

	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		c.onDrop()
		return false
	}
}

// writePump drains the outbound queue onto the socket and keeps the
// connection alive with periodic pings. Runs until close.
func (c *Conn) writePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("write failed, closing connection", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(c.cfg.WriteTimeout)
			if err := c.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.logger.Debug("ping failed, closing connection", "error", err)
				c.close()
				return
			}
		}
	}
}

// close shuts the connection down exactly once. Safe to call from the read
// loop, the write pump, or hub shutdown; the websocket Close unblocks a
// pending ReadMessage so the read loop observes the disconnect.
func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.ws.Close()
	})
}
