// Package session maps websocket connections onto rooms.
//
// Each connection runs a small protocol state machine: it starts unjoined,
// becomes joined to exactly one room after a valid join_room, and is torn
// down on disconnect. The hub owns the read loop and dispatches inbound
// events to the owning room; each Conn drains a buffered outbound queue
// through its own write pump so broadcasting never blocks room mutations.
package session
