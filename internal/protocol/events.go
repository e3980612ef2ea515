package protocol

import (
	"github.com/harshithathangella/Collaborative-Canvas/internal/model"
)

// Client→server event types.
const (
	EventJoinRoom     = "join_room"
	EventDrawStart    = "draw_start"
	EventDrawContinue = "draw_continue"
	EventDrawEnd      = "draw_end"
	EventCursorMove   = "cursor_move"
	EventUndo         = "undo"
	EventRedo         = "redo"
)

// Server→client event types. The draw and undo/redo types are shared with
// the inbound direction; these are the server-only ones.
const (
	EventRoomState  = "room_state"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventError      = "error"
)

// -----------------------------------------------------------------------------
// Client → server payloads
// -----------------------------------------------------------------------------

// JoinRoom asks to enter a room. A connection joined to another room leaves
// it implicitly first.
type JoinRoom struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
}

// DrawStart opens a stroke. StrokeID is client-generated and must be unique
// for the room's lifetime.
type DrawStart struct {
	StrokeID string        `json:"strokeId"`
	Points   []model.Point `json:"points"`
	Color    string        `json:"color"`
	Width    float64       `json:"width"`
	Tool     model.Tool    `json:"tool"`
}

// DrawContinue carries only the points added since the previous batch.
type DrawContinue struct {
	StrokeID string        `json:"strokeId"`
	Points   []model.Point `json:"points"`
}

// DrawEnd commits the stroke to the room's log.
type DrawEnd struct {
	StrokeID string `json:"strokeId"`
}

// CursorMove reports the sender's pointer position. Never stored.
type CursorMove struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// -----------------------------------------------------------------------------
// Server → client payloads
// -----------------------------------------------------------------------------

// RoomState is the bootstrap snapshot sent to a joining connection only.
// CommandLog includes undone entries so late joiners can track undo state
// locally.
type RoomState struct {
	Type       string          `json:"type"`
	Users      []model.User    `json:"users"`
	CommandLog []model.Command `json:"commandLog"`
	MyUser     model.User      `json:"myUser"`
}

// DrawStartRelay is DrawStart plus author identity, sent to the other
// members of the room.
type DrawStartRelay struct {
	Type        string        `json:"type"`
	StrokeID    string        `json:"strokeId"`
	Points      []model.Point `json:"points"`
	Color       string        `json:"color"`
	Width       float64       `json:"width"`
	Tool        model.Tool    `json:"tool"`
	AuthorID    string        `json:"authorId"`
	AuthorColor string        `json:"authorColor"`
}

// DrawContinueRelay forwards a point batch verbatim to the other members.
type DrawContinueRelay struct {
	Type     string        `json:"type"`
	StrokeID string        `json:"strokeId"`
	Points   []model.Point `json:"points"`
}

// DrawEndBroadcast carries the finalized command to every member, the
// originator included: the sender needs the authoritative command to
// promote its provisional stroke to committed state.
type DrawEndBroadcast struct {
	Type     string        `json:"type"`
	StrokeID string        `json:"strokeId"`
	Command  model.Command `json:"command"`
}

// CursorRelay forwards a pointer position, tagged with the mover's
// identity, to the other members only.
type CursorRelay struct {
	Type   string  `json:"type"`
	UserID string  `json:"userId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
}

// HistoryBroadcast announces a successful undo or redo to every member.
// Type distinguishes the two.
type HistoryBroadcast struct {
	Type      string `json:"type"`
	CommandID string `json:"commandId"`
}

// UserJoined announces a new member to the existing ones.
type UserJoined struct {
	Type string     `json:"type"`
	User model.User `json:"user"`
}

// UserLeft announces a departure to the remaining members.
type UserLeft struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// ErrorEvent is sent to the requester only.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewError builds an error event for the given message.
func NewError(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}
