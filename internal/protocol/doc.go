// Package protocol defines the JSON wire format spoken over each websocket
// connection. Every message is a flat object with a "type" field; the hub
// sniffs the type first, then unmarshals the matching payload struct.
package protocol
