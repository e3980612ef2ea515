package protocol

import (
	"errors"
	"testing"
)

func TestExtractType(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{"join", `{"type":"join_room","roomId":"r1"}`, EventJoinRoom, false},
		{"draw start", `{"type":"draw_start","strokeId":"s1"}`, EventDrawStart, false},
		{"undo", `{"type":"undo"}`, EventUndo, false},
		{"extra fields ignored", `{"type":"cursor_move","x":1,"y":2,"junk":true}`, EventCursorMove, false},
		{"missing type", `{"roomId":"r1"}`, "", true},
		{"empty type", `{"type":""}`, "", true},
		{"not json", `nope`, "", true},
		{"empty", ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractType([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractType error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractType_MissingTypeError(t *testing.T) {
	_, err := ExtractType([]byte(`{}`))
	if !errors.Is(err, ErrMissingType) {
		t.Errorf("err = %v, want ErrMissingType", err)
	}
}

func TestNewError(t *testing.T) {
	ev := NewError("boom")
	if ev.Type != EventError {
		t.Errorf("Type = %q, want %q", ev.Type, EventError)
	}
	if ev.Message != "boom" {
		t.Errorf("Message = %q, want boom", ev.Message)
	}
}
