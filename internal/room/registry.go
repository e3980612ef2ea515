package room

import (
	"log/slog"
	"sync"

	"github.com/harshithathangella/Collaborative-Canvas/internal/model"
)

// Registry is the process-wide map of live rooms. A room is reachable from
// the registry if and only if it has at least one member: rooms are created
// lazily on first join and deleted in the same critical section that
// removes their last user, so empty rooms never accumulate.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		logger: logger,
		rooms:  make(map[string]*Room),
	}
}

// Join adds the client to the named room, creating the room first if it
// does not exist. Creation and membership change happen under the registry
// lock so a join can never land in a room that is being torn down.
func (g *Registry) Join(roomID string, c Client, name string) (*Room, model.User) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[roomID]
	if !ok {
		r = New(roomID, g.logger)
		g.rooms[roomID] = r
		g.logger.Info("room created", "room", roomID)
	}

	user := r.Join(c, name)
	return r, user
}

// Leave removes the client from the room and deletes the room if it became
// empty. Reports the removed user, or false if the client was not a member.
func (g *Registry) Leave(r *Room, c Client) (model.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	user, ok := r.Leave(c)
	if !ok {
		return model.User{}, false
	}

	if r.Empty() {
		delete(g.rooms, r.ID())
		g.logger.Info("room deleted", "room", r.ID())
	}
	return user, true
}

// Get returns the room with the given id.
func (g *Registry) Get(roomID string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	return r, ok
}

// Exists reports whether a room with the given id is live.
func (g *Registry) Exists(roomID string) bool {
	_, ok := g.Get(roomID)
	return ok
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
