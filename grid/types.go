package grid

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for grid operations.
var (
	// ErrInvalidSize indicates a grid dimension below 1.
	ErrInvalidSize = errors.New("grid: width and height must be at least 1")
	// ErrUnknownKind indicates a kind name ParseKind does not recognise.
	ErrUnknownKind = errors.New("grid: unknown cell kind")
)

// Kind is the state a cell holds.
type Kind uint8

const (
	// Empty is an open cell with unit cost.
	Empty Kind = iota
	// Wall blocks movement.
	Wall
	// Start marks the route origin.
	Start
	// End marks the route destination.
	End
	// Path marks an interior cell of the last route found. It is a display
	// marker and behaves like Empty for movement.
	Path
	// Traffic is walkable but costs twice as much to enter.
	Traffic
)

var kindNames = [...]string{
	Empty:   "empty",
	Wall:    "wall",
	Start:   "start",
	End:     "end",
	Path:    "path",
	Traffic: "traffic",
}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler so kinds travel as names.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// walkable and cost derive the movement attributes of a kind.
func (k Kind) walkable() bool { return k != Wall }

func (k Kind) cost() float64 {
	switch k {
	case Wall:
		return math.Inf(1)
	case Traffic:
		return 2
	default:
		return 1
	}
}

// Point is an integer cell coordinate.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x" msgpack:"x"`
	Y int `json:"y" yaml:"y" toml:"y" msgpack:"y"`
}

// String formats p as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell is a single grid cell. Walkable and Cost are always derived from Kind.
type Cell struct {
	X, Y     int
	Kind     Kind
	Walkable bool
	Cost     float64
}

// Point returns the cell coordinate.
func (c Cell) Point() Point { return Point{X: c.X, Y: c.Y} }

// Stats summarises grid contents.
type Stats struct {
	TotalCells int
	Walls      int
	Traffic    int
	PathCells  int
	Start      Point
	End        Point
	HasStart   bool
	HasEnd     bool
}
