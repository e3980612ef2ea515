// Package model defines shared data types used across the canvas server.
//
// Conventions:
//   - Coordinates: float64 canvas units (the canvas is logically unbounded)
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: client-generated strings for strokes/commands, server-generated
//     UUIDs for users
package model
