package canvas

import (
	"errors"
	"time"

	"github.com/harshithathangella/Collaborative-Canvas/internal/model"
)

// ErrDuplicateCommand is returned when a command id is already indexed.
// Client-generated ids must be unique per room; collisions are rejected,
// never merged.
var ErrDuplicateCommand = errors.New("command id already in log")

// Log is the authoritative, append-only history of committed strokes for
// one room. Entries never shrink or reorder; insertion order is server
// arrival order. The undone flag is the entire undo history: there is no
// separate stack.
type Log struct {
	entries []model.Command
	index   map[string]int // command id → position in entries
}

// NewLog returns an empty command log.
func NewLog() *Log {
	return &Log{
		index: make(map[string]int),
	}
}

// Append commits a command to the log. It stamps CreatedAt, clears the
// undone flag, and indexes the id. Returns ErrDuplicateCommand if the id
// is already present.
func (l *Log) Append(cmd model.Command) (model.Command, error) {
	if _, exists := l.index[cmd.ID]; exists {
		return model.Command{}, ErrDuplicateCommand
	}

	cmd.Undone = false
	cmd.CreatedAt = time.Now().UnixMicro()

	l.index[cmd.ID] = len(l.entries)
	l.entries = append(l.entries, cmd)

	return cmd, nil
}

// Undo flips the most recently committed active command to undone and
// returns its id. The scan is global: authorship does not matter. Returns
// false if every entry is already undone (or the log is empty).
func (l *Log) Undo() (string, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if !l.entries[i].Undone {
			l.entries[i].Undone = true
			return l.entries[i].ID, true
		}
	}
	return "", false
}

// Redo flips the most recently undone command back to active and returns
// its id. Returns false if no entry is undone.
func (l *Log) Redo() (string, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Undone {
			l.entries[i].Undone = false
			return l.entries[i].ID, true
		}
	}
	return "", false
}

// Active returns the commands with undone=false in insertion order.
// Replaying this sequence onto a blank surface reproduces the current
// canvas state.
func (l *Log) Active() []model.Command {
	out := make([]model.Command, 0, len(l.entries))
	for _, cmd := range l.entries {
		if !cmd.Undone {
			out = append(out, cmd)
		}
	}
	return out
}

// Full returns every entry including undone ones, for bootstrapping a
// participant who joins mid-session.
func (l *Log) Full() []model.Command {
	out := make([]model.Command, len(l.entries))
	copy(out, l.entries)
	return out
}

// Get returns the command with the given id.
func (l *Log) Get(id string) (model.Command, bool) {
	pos, ok := l.index[id]
	if !ok {
		return model.Command{}, false
	}
	return l.entries[pos], true
}

// Len returns the total number of entries, undone included.
func (l *Log) Len() int {
	return len(l.entries)
}
