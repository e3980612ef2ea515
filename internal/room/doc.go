// Package room implements isolated collaboration sessions and their
// process-wide registry.
//
// Each Room owns its command log, in-flight stroke tracker, and user set
// outright; all mutations and the broadcasts they trigger run inside a
// single critical section on the room's mutex, so for any one room the
// observable order of commits, undos, and redos is a total order equal to
// server arrival order. Rooms share nothing, so no cross-room ordering
// exists or is needed.
package room
