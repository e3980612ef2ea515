package room

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/harshithathangella/Collaborative-Canvas/internal/canvas"
	"github.com/harshithathangella/Collaborative-Canvas/internal/model"
	"github.com/harshithathangella/Collaborative-Canvas/internal/protocol"
)

// Client is the outbound handle for one connected participant. Send must
// never block: implementations enqueue and report false on overflow so a
// slow peer cannot stall the room.
type Client interface {
	Send(event any) bool
}

// Room is one isolated session: membership plus canvas state.
type Room struct {
	id     string
	logger *slog.Logger

	mu          sync.Mutex
	users       map[Client]model.User
	log         *canvas.Log
	inFlight    *canvas.Tracker
	colorCursor int
}

// New creates an empty room.
func New(id string, logger *slog.Logger) *Room {
	if logger == nil {
		logger = slog.Default()
	}

	return &Room{
		id:       id,
		logger:   logger.With("room", id),
		users:    make(map[Client]model.User),
		log:      canvas.NewLog(),
		inFlight: canvas.NewTracker(),
	}
}

// ID returns the room id.
func (r *Room) ID() string {
	return r.id
}

// Join registers a client, assigns the next palette color, sends the
// bootstrap snapshot to the joiner, and announces the new user to everyone
// else.
func (r *Room) Join(c Client, name string) model.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := model.User{
		ID:    uuid.NewString(),
		Name:  name,
		Color: model.PaletteColor(r.colorCursor),
	}
	r.colorCursor++
	r.users[c] = user

	c.Send(protocol.RoomState{
		Type:       protocol.EventRoomState,
		Users:      r.userListLocked(),
		CommandLog: r.log.Full(),
		MyUser:     user,
	})

	r.broadcastLocked(protocol.UserJoined{
		Type: protocol.EventUserJoined,
		User: user,
	}, c)

	r.logger.Debug("user joined", "user_id", user.ID, "name", user.Name)
	return user
}

// Leave unregisters a client, discards their in-flight strokes, and
// announces the departure to the remaining members. Committed commands by
// the departing user stay in the log. Reports false if the client was not
// a member.
func (r *Room) Leave(c Client) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[c]
	if !ok {
		return model.User{}, false
	}
	delete(r.users, c)

	if dropped := r.inFlight.DiscardAllFor(user.ID); dropped > 0 {
		r.logger.Debug("discarded in-flight strokes", "user_id", user.ID, "count", dropped)
	}

	r.broadcastLocked(protocol.UserLeft{
		Type:   protocol.EventUserLeft,
		UserID: user.ID,
	}, nil)

	r.logger.Debug("user left", "user_id", user.ID)
	return user, true
}

// StartStroke opens an in-flight stroke for the client and relays it, with
// author identity attached, to the other members.
func (r *Room) StartStroke(c Client, ev protocol.DrawStart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[c]
	if !ok {
		return nil // departed mid-flight; drop
	}

	err := r.inFlight.Begin(canvas.StrokeStart{
		ID:     ev.StrokeID,
		Author: user,
		Points: ev.Points,
		Color:  ev.Color,
		Width:  ev.Width,
		Tool:   ev.Tool,
	})
	if err != nil {
		return err
	}

	r.broadcastLocked(protocol.DrawStartRelay{
		Type:        protocol.EventDrawStart,
		StrokeID:    ev.StrokeID,
		Points:      ev.Points,
		Color:       ev.Color,
		Width:       ev.Width,
		Tool:        ev.Tool,
		AuthorID:    user.ID,
		AuthorColor: user.Color,
	}, c)
	return nil
}

// ContinueStroke appends a point batch to an in-flight stroke and relays
// the batch to the other members. Unknown stroke ids are dropped: the
// stroke may already have ended or been discarded on disconnect.
func (r *Room) ContinueStroke(c Client, ev protocol.DrawContinue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[c]; !ok {
		return
	}

	if err := r.inFlight.Extend(ev.StrokeID, ev.Points); err != nil {
		r.logger.Debug("dropping continuation for unknown stroke", "stroke_id", ev.StrokeID)
		return
	}

	r.broadcastLocked(protocol.DrawContinueRelay{
		Type:     protocol.EventDrawContinue,
		StrokeID: ev.StrokeID,
		Points:   ev.Points,
	}, c)
}

// EndStroke commits an in-flight stroke to the log and broadcasts the
// finalized command to every member, the originator included. Unknown
// stroke ids are dropped; duplicate command ids are rejected.
func (r *Room) EndStroke(c Client, strokeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[c]; !ok {
		return nil
	}

	cmd, err := r.inFlight.Commit(strokeID)
	if err != nil {
		r.logger.Debug("dropping end for unknown stroke", "stroke_id", strokeID)
		return nil
	}

	cmd, err = r.log.Append(cmd)
	if err != nil {
		r.logger.Warn("rejected duplicate command id", "command_id", strokeID)
		return err
	}

	r.broadcastLocked(protocol.DrawEndBroadcast{
		Type:     protocol.EventDrawEnd,
		StrokeID: strokeID,
		Command:  cmd,
	}, nil)
	return nil
}

// MoveCursor relays the client's pointer position to the other members.
// Positions are never stored.
func (r *Room) MoveCursor(c Client, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[c]
	if !ok {
		return
	}

	r.broadcastLocked(protocol.CursorRelay{
		Type:   protocol.EventCursorMove,
		UserID: user.ID,
		X:      x,
		Y:      y,
		Name:   user.Name,
		Color:  user.Color,
	}, c)
}

// Undo flips the most recent active command to undone and broadcasts the
// result to every member. Reports false when there is nothing to undo.
func (r *Room) Undo(c Client) (string, bool) {
	return r.history(c, protocol.EventUndo)
}

// Redo flips the most recently undone command back and broadcasts the
// result to every member. Reports false when there is nothing to redo.
func (r *Room) Redo(c Client) (string, bool) {
	return r.history(c, protocol.EventRedo)
}

func (r *Room) history(c Client, event string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[c]; !ok {
		return "", false
	}

	var (
		id string
		ok bool
	)
	if event == protocol.EventUndo {
		id, ok = r.log.Undo()
	} else {
		id, ok = r.log.Redo()
	}
	if !ok {
		return "", false
	}

	r.broadcastLocked(protocol.HistoryBroadcast{
		Type:      event,
		CommandID: id,
	}, nil)
	return id, true
}

// Users returns the current members.
func (r *Room) Users() []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userListLocked()
}

// ActiveCommands returns the commands currently visible on the canvas.
func (r *Room) ActiveCommands() []model.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Active()
}

// FullLog returns the complete command history, undone entries included.
func (r *Room) FullLog() []model.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.Full()
}

// InFlightCount returns the number of strokes being drawn right now.
func (r *Room) InFlightCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight.Len()
}

// Empty reports whether the room has no members.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users) == 0
}

// userListLocked snapshots the member set. Caller holds r.mu.
func (r *Room) userListLocked() []model.User {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out
}

// broadcastLocked sends an event to every member except the excluded
// client. Sends are fire-and-forget; overflow on one connection never
// blocks the room. Caller holds r.mu.
func (r *Room) broadcastLocked(event any, except Client) {
	for c := range r.users {
		if c == except {
			continue
		}
		if !c.Send(event) {
			r.logger.Warn("dropping event for slow connection", "user_id", r.users[c].ID)
		}
	}
}
