package model

// -----------------------------------------------------------------------------
// Drawing Types
// -----------------------------------------------------------------------------

// Tool identifies the drawing tool used for a stroke.
type Tool string

const (
	ToolBrush  Tool = "brush"
	ToolEraser Tool = "eraser"
)

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	return t == ToolBrush || t == ToolEraser
}

// Point is a single coordinate on the canvas. Points have no identity and
// are immutable once produced.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Command is a committed stroke in a room's history. Once appended to the
// log, only Undone may change, and only through undo/redo.
type Command struct {
	ID          string  `json:"id"`          // Client-generated, unique per room
	AuthorID    string  `json:"authorId"`    // Server-generated user id
	AuthorName  string  `json:"authorName"`  // Display name at commit time
	AuthorColor string  `json:"authorColor"` // Palette color at commit time
	Points      []Point `json:"points"`      // Full gesture path, in draw order
	Color       string  `json:"color"`       // Stroke color
	Width       float64 `json:"width"`       // Stroke width (canvas units)
	Tool        Tool    `json:"tool"`        // "brush" or "eraser"
	Undone      bool    `json:"undone"`      // Hidden from the canvas when true
	CreatedAt   int64   `json:"createdAt"`   // Commit time (µs since epoch)
}

// -----------------------------------------------------------------------------
// Membership Types
// -----------------------------------------------------------------------------

// User is a participant in a room. Users live for exactly one connection;
// a reconnect produces a fresh id.
type User struct {
	ID    string `json:"id"`    // Server-generated UUID
	Name  string `json:"name"`  // Display name from the join request
	Color string `json:"color"` // Assigned palette color
}

// Palette is the fixed set of high-contrast user colors, assigned
// round-robin as users join a room.
var Palette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#42d4f4", // cyan
	"#f032e6", // magenta
	"#bfef45", // lime
	"#469990", // teal
	"#9a6324", // brown
}

// PaletteColor returns the palette entry for cursor position i.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
