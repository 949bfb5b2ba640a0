package server

import (
	"encoding/json"

	"github.com/katalvlaran/pathless/astar"
	"github.com/katalvlaran/pathless/grid"
)

// Client -> Server message types
const (
	MsgSetCell      = "setCell"
	MsgClear        = "clear"
	MsgFindPath     = "findPath"
	MsgLoadScenario = "loadScenario"
	MsgState        = "state"
)

// Server -> Client message types
const (
	MsgWelcome   = "welcome"
	MsgCellSet   = "cellSet"
	MsgCleared   = "cleared"
	MsgPathFound = "pathFound"
	MsgNoPath    = "noPath"
	MsgLoaded    = "loaded"
	MsgError     = "error"
)

// Clear targets
const (
	ClearAll   = "all"
	ClearWalls = "walls"
	ClearPath  = "path"
)

// Envelope wraps every outgoing JSON message.
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope defers payload decoding until the type is known.
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// WelcomeMsg is sent once per connection.
type WelcomeMsg struct {
	ID       string  `json:"id"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	CellSize float64 `json:"cellSize"`
}

// SetCellMsg changes one cell; Kind is a kind name such as "wall".
type SetCellMsg struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Kind grid.Kind `json:"kind"`
}

// ClearMsg selects what to clear: all, walls or path.
type ClearMsg struct {
	What string `json:"what"`
}

// FindPathMsg searches between the session grid's start and end.
type FindPathMsg struct {
	Optimize bool `json:"optimize"`
}

// LoadScenarioMsg names a built-in or stored scenario.
type LoadScenarioMsg struct {
	Name string `json:"name"`
}

// PathFoundMsg carries a route and its statistics.
type PathFoundMsg struct {
	Path      astar.Path  `json:"path"`
	Optimized astar.Path  `json:"optimized,omitempty"`
	Stats     astar.Stats `json:"stats"`
	Cost      float64     `json:"cost"`
}

// NoPathMsg explains why no route was returned.
type NoPathMsg struct {
	Reason string `json:"reason"`
}

// ErrorMsg reports a rejected request.
type ErrorMsg struct {
	Msg string `json:"message"`
}

// Snapshot is the full grid, sent as a msgpack binary frame.
// Kinds is row-major, one grid.Kind per cell.
type Snapshot struct {
	Width  int     `msgpack:"w"`
	Height int     `msgpack:"h"`
	Kinds  []uint8 `msgpack:"k"`
}
