package scenario

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathless/grid"
)

// Sentinel errors for scenario handling.
var (
	// ErrUnknownScenario indicates no scenario with the requested name.
	ErrUnknownScenario = errors.New("scenario: unknown scenario")
	// ErrOutOfBounds indicates a scenario point outside its grid.
	ErrOutOfBounds = errors.New("scenario: point out of bounds")
	// ErrSizeMismatch indicates a scenario sized differently from the target grid.
	ErrSizeMismatch = errors.New("scenario: size does not match grid")
	// ErrUnknownFormat indicates an unsupported file format.
	ErrUnknownFormat = errors.New("scenario: unknown format")
	// ErrInvalid indicates a scenario that fails validation.
	ErrInvalid = errors.New("scenario: invalid scenario")
)

// Scenario is a named grid layout.
// Width and Height may be zero, meaning "fits any grid large enough".
type Scenario struct {
	Name        string       `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" msgpack:"description,omitempty"`
	Width       int          `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty" msgpack:"width,omitempty"`
	Height      int          `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty" msgpack:"height,omitempty"`
	Start       grid.Point   `json:"start" yaml:"start" toml:"start" msgpack:"start"`
	End         grid.Point   `json:"end" yaml:"end" toml:"end" msgpack:"end"`
	Walls       []grid.Point `json:"walls,omitempty" yaml:"walls,omitempty" toml:"walls,omitempty" msgpack:"walls,omitempty"`
	Traffic     []grid.Point `json:"traffic,omitempty" yaml:"traffic,omitempty" toml:"traffic,omitempty" msgpack:"traffic,omitempty"`
}

// Validate checks the name, the declared size and that every point fits it.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if s.Width == 0 || s.Height == 0 {
		return nil
	}
	return s.checkBounds(s.Width, s.Height)
}

func (s Scenario) checkBounds(w, h int) error {
	in := func(p grid.Point) bool { return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h }
	for _, p := range []grid.Point{s.Start, s.End} {
		if !in(p) {
			return fmt.Errorf("%w: %q endpoint %v in %dx%d", ErrOutOfBounds, s.Name, p, w, h)
		}
	}
	for _, set := range [][]grid.Point{s.Walls, s.Traffic} {
		for _, p := range set {
			if !in(p) {
				return fmt.Errorf("%w: %q cell %v in %dx%d", ErrOutOfBounds, s.Name, p, w, h)
			}
		}
	}
	return nil
}

// NewGrid allocates a grid of the scenario's size and applies it.
func (s Scenario) NewGrid() (*grid.Grid, error) {
	g, err := grid.New(s.Width, s.Height)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if err := s.Apply(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply clears g and writes walls, traffic, start and end, in that order,
// so endpoints win over obstacles placed on the same cell. Nothing is
// written if any point lies outside g.
func (s Scenario) Apply(g *grid.Grid) error {
	if (s.Width != 0 && s.Width != g.Width()) || (s.Height != 0 && s.Height != g.Height()) {
		return fmt.Errorf("%w: %q is %dx%d, grid is %dx%d",
			ErrSizeMismatch, s.Name, s.Width, s.Height, g.Width(), g.Height())
	}
	if err := s.checkBounds(g.Width(), g.Height()); err != nil {
		return err
	}

	g.ClearAll()
	for _, p := range s.Walls {
		g.SetCellType(p.X, p.Y, grid.Wall)
	}
	for _, p := range s.Traffic {
		g.SetCellType(p.X, p.Y, grid.Traffic)
	}
	g.SetCellType(s.Start.X, s.Start.Y, grid.Start)
	g.SetCellType(s.End.X, s.End.Y, grid.End)

	return nil
}

// Capture records the current layout of g as a scenario named name.
// Path markers are not captured. Missing endpoints are left at (0,0).
func Capture(name string, g *grid.Grid) Scenario {
	s := Scenario{Name: name, Width: g.Width(), Height: g.Height()}
	s.Start, _ = g.Start()
	s.End, _ = g.End()
	for _, c := range g.Cells() {
		switch c.Kind {
		case grid.Wall:
			s.Walls = append(s.Walls, c.Point())
		case grid.Traffic:
			s.Traffic = append(s.Traffic, c.Point())
		}
	}
	return s
}
