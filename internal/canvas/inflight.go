package canvas

import (
	"errors"

	"github.com/harshithathangella/Collaborative-Canvas/internal/model"
)

// Errors
var (
	// ErrDuplicateStroke is returned by Begin when the stroke id is already
	// being tracked.
	ErrDuplicateStroke = errors.New("stroke id already in flight")

	// ErrUnknownStroke is returned by Extend and Commit for ids that are not
	// tracked. This is a benign race (the stroke already ended, or was
	// discarded on disconnect) and callers are expected to drop the event.
	ErrUnknownStroke = errors.New("stroke id not in flight")
)

// StrokeStart carries everything needed to open an in-flight stroke.
type StrokeStart struct {
	ID     string
	Author model.User
	Points []model.Point // First point batch; may be empty
	Color  string
	Width  float64
	Tool   model.Tool
}

// stroke is a command under construction.
type stroke struct {
	author model.User
	points []model.Point
	color  string
	width  float64
	tool   model.Tool
}

// Tracker holds one room's in-flight strokes, keyed by stroke id. A stroke
// lives here from its first point until commit or discard and never reaches
// the command log in partial form.
type Tracker struct {
	strokes map[string]*stroke
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		strokes: make(map[string]*stroke),
	}
}

// Begin opens a new in-flight stroke. Returns ErrDuplicateStroke if the id
// is already tracked.
func (t *Tracker) Begin(s StrokeStart) error {
	if _, exists := t.strokes[s.ID]; exists {
		return ErrDuplicateStroke
	}

	t.strokes[s.ID] = &stroke{
		author: s.Author,
		points: append([]model.Point(nil), s.Points...),
		color:  s.Color,
		width:  s.Width,
		tool:   s.Tool,
	}
	return nil
}

// Extend appends a batch of new points to a tracked stroke. O(1) amortized
// per batch. Returns ErrUnknownStroke for untracked ids.
func (t *Tracker) Extend(id string, points []model.Point) error {
	s, ok := t.strokes[id]
	if !ok {
		return ErrUnknownStroke
	}
	s.points = append(s.points, points...)
	return nil
}

// Commit removes the stroke and returns a finalized command ready for
// Log.Append. The command's points are the concatenation of the Begin batch
// and every Extend batch, in call order. Returns ErrUnknownStroke for
// untracked ids.
func (t *Tracker) Commit(id string) (model.Command, error) {
	s, ok := t.strokes[id]
	if !ok {
		return model.Command{}, ErrUnknownStroke
	}
	delete(t.strokes, id)

	return model.Command{
		ID:          id,
		AuthorID:    s.author.ID,
		AuthorName:  s.author.Name,
		AuthorColor: s.author.Color,
		Points:      s.points,
		Color:       s.color,
		Width:       s.width,
		Tool:        s.tool,
	}, nil
}

// DiscardAllFor drops every in-flight stroke belonging to the given author
// and returns how many were dropped. Called on disconnect; committed
// commands are unaffected since they already moved to the log.
func (t *Tracker) DiscardAllFor(authorID string) int {
	dropped := 0
	for id, s := range t.strokes {
		if s.author.ID == authorID {
			delete(t.strokes, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of strokes currently in flight.
func (t *Tracker) Len() int {
	return len(t.strokes)
}
