package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/harshithathangella/Collaborative-Canvas/internal/room"
	"github.com/harshithathangella/Collaborative-Canvas/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Hub) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := room.NewRegistry(logger)
	hub := session.NewHub(session.DefaultConfig(), registry, logger)
	s := New(DefaultConfig(), hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(s.routes(ctx))

	t.Cleanup(func() {
		cancel()
		hub.CloseAll()
		ts.Close()
	})
	return ts, hub
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func send(t *testing.T, c *websocket.Conn, v any) {
	t.Helper()
	if err := c.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func recv(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return m
}

func expect(t *testing.T, c *websocket.Conn, eventType string) map[string]any {
	t.Helper()
	m := recv(t, c)
	if m["type"] != eventType {
		t.Fatalf("got event %v, want %q (full: %v)", m["type"], eventType, m)
	}
	return m
}

func join(t *testing.T, c *websocket.Conn, roomID, name string) map[string]any {
	t.Helper()
	send(t, c, map[string]any{"type": "join_room", "roomId": roomID, "userName": name})
	return expect(t, c, "room_state")
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestServer_JoinReceivesRoomState(t *testing.T) {
	ts, _ := newTestServer(t)
	c := dial(t, ts)

	state := join(t, c, "r1", "ada")

	me, ok := state["myUser"].(map[string]any)
	if !ok {
		t.Fatalf("myUser missing: %v", state)
	}
	if me["name"] != "ada" {
		t.Errorf("myUser.name = %v, want ada", me["name"])
	}
	if me["id"] == "" || me["id"] == nil {
		t.Error("myUser.id should be set")
	}
	if me["color"] == "" || me["color"] == nil {
		t.Error("myUser.color should be set")
	}

	users, ok := state["users"].([]any)
	if !ok || len(users) != 1 {
		t.Errorf("users = %v, want one entry", state["users"])
	}
}

func TestServer_JoinValidation(t *testing.T) {
	ts, _ := newTestServer(t)
	c := dial(t, ts)

	// Empty room id is rejected; the connection stays usable.
	send(t, c, map[string]any{"type": "join_room", "roomId": "  "})
	expect(t, c, "error")

	join(t, c, "r1", "ada")
}

func TestServer_EventsBeforeJoin(t *testing.T) {
	ts, _ := newTestServer(t)
	c := dial(t, ts)

	send(t, c, map[string]any{"type": "undo"})
	m := expect(t, c, "error")
	if !strings.Contains(m["message"].(string), "not in a room") {
		t.Errorf("message = %v, want a not-in-a-room error", m["message"])
	}
}

func TestServer_DrawFlowBetweenClients(t *testing.T) {
	ts, _ := newTestServer(t)

	a := dial(t, ts)
	join(t, a, "r1", "ada")

	b := dial(t, ts)
	stateB := join(t, b, "r1", "bob")
	if users := stateB["users"].([]any); len(users) != 2 {
		t.Fatalf("b sees %d users, want 2", len(users))
	}

	joined := expect(t, a, "user_joined")
	if joined["user"].(map[string]any)["name"] != "bob" {
		t.Errorf("user_joined = %v, want bob", joined["user"])
	}

	send(t, a, map[string]any{
		"type": "draw_start", "strokeId": "s1",
		"points": []map[string]float64{{"x": 0, "y": 0}},
		"color":  "#000000", "width": 3, "tool": "brush",
	})
	send(t, a, map[string]any{
		"type": "draw_continue", "strokeId": "s1",
		"points": []map[string]float64{{"x": 1, "y": 1}},
	})
	send(t, a, map[string]any{"type": "draw_end", "strokeId": "s1"})

	// The other member sees the whole gesture with author identity.
	start := expect(t, b, "draw_start")
	if start["authorId"] == nil || start["authorColor"] == nil {
		t.Errorf("relay missing author identity: %v", start)
	}
	expect(t, b, "draw_continue")
	endB := expect(t, b, "draw_end")

	// The sender gets only the committed command back (self-echo).
	endA := expect(t, a, "draw_end")
	cmd := endA["command"].(map[string]any)
	if cmd["id"] != "s1" {
		t.Errorf("command id = %v, want s1", cmd["id"])
	}
	if pts := cmd["points"].([]any); len(pts) != 2 {
		t.Errorf("command has %d points, want 2", len(pts))
	}
	if endB["command"].(map[string]any)["id"] != "s1" {
		t.Errorf("b command id = %v, want s1", endB["command"])
	}

	// Undo reaches everyone, including the requester.
	send(t, b, map[string]any{"type": "undo"})
	undoA := expect(t, a, "undo")
	undoB := expect(t, b, "undo")
	if undoA["commandId"] != "s1" || undoB["commandId"] != "s1" {
		t.Errorf("undo ids = %v/%v, want s1/s1", undoA["commandId"], undoB["commandId"])
	}

	// Nothing left to undo.
	send(t, b, map[string]any{"type": "undo"})
	expect(t, b, "error")
}

func TestServer_CursorRelayedToOthersOnly(t *testing.T) {
	ts, _ := newTestServer(t)

	a := dial(t, ts)
	join(t, a, "r1", "ada")
	b := dial(t, ts)
	join(t, b, "r1", "bob")
	expect(t, a, "user_joined")

	send(t, a, map[string]any{"type": "cursor_move", "x": 10, "y": 20})

	cur := expect(t, b, "cursor_move")
	if cur["x"].(float64) != 10 || cur["y"].(float64) != 20 {
		t.Errorf("cursor = (%v,%v), want (10,20)", cur["x"], cur["y"])
	}
	if cur["userId"] == nil || cur["name"] != "ada" {
		t.Errorf("cursor identity missing: %v", cur)
	}
}

func TestServer_DisconnectCleansUp(t *testing.T) {
	ts, hub := newTestServer(t)

	a := dial(t, ts)
	join(t, a, "r1", "ada")
	b := dial(t, ts)
	join(t, b, "r1", "bob")
	expect(t, a, "user_joined")

	// a leaves mid-stroke: the in-flight stroke must die with the session.
	send(t, a, map[string]any{
		"type": "draw_start", "strokeId": "s1",
		"points": []map[string]float64{{"x": 0, "y": 0}},
		"color":  "#000000", "width": 3, "tool": "brush",
	})
	expect(t, b, "draw_start")
	a.Close()

	expect(t, b, "user_left")

	waitFor(t, func() bool { return hub.Stats().Connections == 1 }, "connection not cleaned up")
	if got := hub.Stats().Rooms; got != 1 {
		t.Errorf("Rooms = %d, want 1", got)
	}

	// The dead member's stroke never commits; b can reuse nothing of it,
	// and an end for it from b's side is silently dropped.
	send(t, b, map[string]any{"type": "draw_end", "strokeId": "s1"})
	send(t, b, map[string]any{"type": "undo"})
	expect(t, b, "error") // nothing to undo: the log stayed empty

	// Last member out deletes the room.
	b.Close()
	waitFor(t, func() bool { return hub.Stats().Rooms == 0 }, "room not deleted")
}

func TestServer_SwitchRoomsLeavesFirst(t *testing.T) {
	ts, hub := newTestServer(t)

	a := dial(t, ts)
	join(t, a, "r1", "ada")
	b := dial(t, ts)
	join(t, b, "r1", "bob")
	expect(t, a, "user_joined")

	// b moves to r2: r1 members hear a leave, r1 survives with one user.
	send(t, b, map[string]any{"type": "join_room", "roomId": "r2", "userName": "bob"})
	expect(t, b, "room_state")
	expect(t, a, "user_left")

	waitFor(t, func() bool { return hub.Stats().Rooms == 2 }, "expected two rooms")
}

func TestServer_Healthz(t *testing.T) {
	ts, _ := newTestServer(t)

	c := dial(t, ts)
	join(t, c, "r1", "ada")

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
		Hub    struct {
			Connections int `json:"connections"`
			Rooms       int `json:"rooms"`
		} `json:"hub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.Hub.Connections != 1 || body.Hub.Rooms != 1 {
		t.Errorf("hub = %+v, want 1 connection and 1 room", body.Hub)
	}
}

func TestServer_MalformedMessages(t *testing.T) {
	ts, _ := newTestServer(t)
	c := dial(t, ts)
	join(t, c, "r1", "ada")

	// No type field.
	send(t, c, map[string]any{"roomId": "r1"})
	expect(t, c, "error")

	// Unknown event type.
	send(t, c, map[string]any{"type": "teleport"})
	expect(t, c, "error")

	// Unknown tool.
	send(t, c, map[string]any{"type": "draw_start", "strokeId": "s1", "tool": "chisel"})
	expect(t, c, "error")

	// The connection is still healthy afterwards.
	send(t, c, map[string]any{"type": "cursor_move", "x": 1, "y": 2})
	send(t, c, map[string]any{"type": "undo"})
	expect(t, c, "error") // nothing to undo
}
