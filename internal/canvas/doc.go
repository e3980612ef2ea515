// Package canvas holds the per-room drawing state: the append-only command
// log with its global undo/redo timeline, and the tracker that assembles
// in-flight strokes from delta batches before they are committed.
//
// Neither type locks internally. Both are owned by exactly one room and
// must only be touched through that room's serialized methods.
package canvas
