package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/harshithathangella/Collaborative-Canvas/internal/canvas"
	"github.com/harshithathangella/Collaborative-Canvas/internal/protocol"
	"github.com/harshithathangella/Collaborative-Canvas/internal/room"
)

// DefaultUserName is used when a join request carries no display name.
const DefaultUserName = "anonymous"

// joined is the per-connection protocol state after a successful join.
// Only the connection's own read loop touches it.
type joined struct {
	room *room.Room
}

// Hub dispatches inbound events from every connection to the owning room.
type Hub struct {
	cfg      Config
	registry *room.Registry
	logger   *slog.Logger

	// Live connections, for stats and shutdown.
	connMu sync.Mutex
	conns  map[*Conn]struct{}

	// Stats
	statsMu     sync.Mutex
	received    int64
	dropped     int64
	parseErrors int64
}

// NewHub creates a hub over the given room registry.
func NewHub(cfg Config, registry *room.Registry, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		conns:    make(map[*Conn]struct{}),
	}
}

// ServeConn runs the full lifetime of one websocket connection: read loop,
// event dispatch, and disconnect cleanup. It blocks until the connection
// closes or ctx is cancelled.
func (h *Hub) ServeConn(ctx context.Context, ws *websocket.Conn) {
	conn := newConn(ws, h.cfg, h.logger, func() {
		h.statsMu.Lock()
		h.dropped++
		h.statsMu.Unlock()
	})

	h.connMu.Lock()
	h.conns[conn] = struct{}{}
	h.connMu.Unlock()

	go conn.writePump()

	stop := context.AfterFunc(ctx, conn.close)
	defer stop()

	ws.SetReadLimit(h.cfg.MaxMessageSize)
	ws.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	var state *joined
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("connection read error", "error", err)
			}
			break
		}
		state = h.dispatch(conn, state, data)
	}

	// Disconnect is a lifecycle event, not an error: discard the user's
	// in-flight strokes, notify the remaining members, drop empty rooms.
	if state != nil {
		if user, ok := h.registry.Leave(state.room, conn); ok {
			h.logger.Info("disconnected", "room", state.room.ID(), "user_id", user.ID)
		}
	}

	h.connMu.Lock()
	delete(h.conns, conn)
	h.connMu.Unlock()

	conn.close()
}

// dispatch routes one inbound event and returns the connection's new
// protocol state.
func (h *Hub) dispatch(conn *Conn, state *joined, data []byte) *joined {
	h.statsMu.Lock()
	h.received++
	h.statsMu.Unlock()

	eventType, err := protocol.ExtractType(data)
	if err != nil {
		h.countParseError()
		conn.Send(protocol.NewError("malformed message"))
		return state
	}

	if eventType == protocol.EventJoinRoom {
		return h.handleJoin(conn, state, data)
	}

	// Everything below requires a room.
	if state == nil {
		if eventType != protocol.EventCursorMove {
			conn.Send(protocol.NewError("not in a room"))
		}
		return nil
	}

	switch eventType {
	case protocol.EventDrawStart:
		h.handleDrawStart(conn, state.room, data)
	case protocol.EventDrawContinue:
		h.handleDrawContinue(conn, state.room, data)
	case protocol.EventDrawEnd:
		h.handleDrawEnd(conn, state.room, data)
	case protocol.EventCursorMove:
		h.handleCursorMove(conn, state.room, data)
	case protocol.EventUndo:
		if _, ok := state.room.Undo(conn); !ok {
			conn.Send(protocol.NewError("nothing to undo"))
		}
	case protocol.EventRedo:
		if _, ok := state.room.Redo(conn); !ok {
			conn.Send(protocol.NewError("nothing to redo"))
		}
	default:
		h.logger.Debug("skipping unknown event type", "type", eventType)
		conn.Send(protocol.NewError("unknown event type"))
	}
	return state
}

// handleJoin validates a join request and moves the connection into the
// room, leaving any prior room first.
func (h *Hub) handleJoin(conn *Conn, state *joined, data []byte) *joined {
	var ev protocol.JoinRoom
	if err := json.Unmarshal(data, &ev); err != nil {
		h.countParseError()
		conn.Send(protocol.NewError("malformed join request"))
		return state
	}

	if strings.TrimSpace(ev.RoomID) == "" {
		conn.Send(protocol.NewError("room id must not be empty"))
		return state
	}

	name := strings.TrimSpace(ev.UserName)
	if name == "" {
		name = DefaultUserName
	}

	// A connection is joined to at most one room; a second join leaves the
	// first room implicitly.
	if state != nil {
		h.registry.Leave(state.room, conn)
	}

	r, user := h.registry.Join(ev.RoomID, conn, name)
	h.logger.Info("joined room", "room", r.ID(), "user_id", user.ID, "name", user.Name)
	return &joined{room: r}
}

func (h *Hub) handleDrawStart(conn *Conn, r *room.Room, data []byte) {
	var ev protocol.DrawStart
	if err := json.Unmarshal(data, &ev); err != nil {
		h.countParseError()
		conn.Send(protocol.NewError("malformed draw_start"))
		return
	}
	if ev.StrokeID == "" {
		conn.Send(protocol.NewError("stroke id must not be empty"))
		return
	}
	if !ev.Tool.Valid() {
		conn.Send(protocol.NewError("unknown tool"))
		return
	}

	if err := r.StartStroke(conn, ev); errors.Is(err, canvas.ErrDuplicateStroke) {
		conn.Send(protocol.NewError("stroke id already in use"))
	}
}

func (h *Hub) handleDrawContinue(conn *Conn, r *room.Room, data []byte) {
	var ev protocol.DrawContinue
	if err := json.Unmarshal(data, &ev); err != nil {
		h.countParseError()
		conn.Send(protocol.NewError("malformed draw_continue"))
		return
	}
	r.ContinueStroke(conn, ev)
}

func (h *Hub) handleDrawEnd(conn *Conn, r *room.Room, data []byte) {
	var ev protocol.DrawEnd
	if err := json.Unmarshal(data, &ev); err != nil {
		h.countParseError()
		conn.Send(protocol.NewError("malformed draw_end"))
		return
	}

	if err := r.EndStroke(conn, ev.StrokeID); errors.Is(err, canvas.ErrDuplicateCommand) {
		conn.Send(protocol.NewError("command id already committed"))
	}
}

func (h *Hub) handleCursorMove(conn *Conn, r *room.Room, data []byte) {
	var ev protocol.CursorMove
	if err := json.Unmarshal(data, &ev); err != nil {
		h.countParseError()
		return
	}
	r.MoveCursor(conn, ev.X, ev.Y)
}

func (h *Hub) countParseError() {
	h.statsMu.Lock()
	h.parseErrors++
	h.statsMu.Unlock()
}

// Stats returns current hub statistics.
func (h *Hub) Stats() HubStats {
	h.connMu.Lock()
	connections := len(h.conns)
	h.connMu.Unlock()

	h.statsMu.Lock()
	defer h.statsMu.Unlock()

	return HubStats{
		Connections:    connections,
		Rooms:          h.registry.Len(),
		EventsReceived: h.received,
		EventsDropped:  h.dropped,
		ParseErrors:    h.parseErrors,
	}
}

// CloseAll closes every live connection. Each read loop observes the close
// and runs its normal disconnect cleanup, so rooms drain and delete through
// the ordinary path.
func (h *Hub) CloseAll() {
	h.connMu.Lock()
	conns := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.connMu.Unlock()

	for _, c := range conns {
		c.close()
	}
}
