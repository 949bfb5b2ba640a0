package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/pathless/astar"
	"github.com/katalvlaran/pathless/grid"
	"github.com/katalvlaran/pathless/scenario"
)

var (
	// ErrInvalidCell indicates a cell request outside the session grid.
	ErrInvalidCell = errors.New("server: cell out of bounds")
	// ErrUnknownClear indicates a clear request with an unknown target.
	ErrUnknownClear = errors.New("server: unknown clear target")
)

// Session is the grid and pathfinder owned by one connection.
type Session struct {
	ID string

	mu     sync.Mutex
	grid   *grid.Grid
	pf     *astar.Pathfinder
	logger *slog.Logger
}

// NewSession allocates a width×height grid with a fresh random id.
// A nil logger discards output.
func NewSession(width, height int, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger = logger.With("session", id)
	pf, err := astar.New(g, astar.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, grid: g, pf: pf, logger: logger}, nil
}

// Size returns the grid dimensions.
func (s *Session) Size() (int, int) {
	return s.grid.Width(), s.grid.Height()
}

// SetCell changes the kind of one cell.
func (s *Session) SetCell(x, y int, kind grid.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.grid.SetCellType(x, y, kind) {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, x, y)
	}
	return nil
}

// Clear resets all cells, walls and traffic, or path markers.
func (s *Session) Clear(what string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch what {
	case ClearAll:
		s.grid.ClearAll()
	case ClearWalls:
		s.grid.ClearWalls()
	case ClearPath:
		s.grid.ClearPath()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownClear, what)
	}
	return nil
}

// FindPath searches between the grid's start and end cells. With optimize
// the simplified waypoints are returned alongside the full route.
func (s *Session) FindPath(optimize bool) (PathFoundMsg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pf.FindPathFromGrid()
	if err != nil {
		return PathFoundMsg{}, err
	}
	msg := PathFoundMsg{
		Path:  path,
		Stats: s.pf.Stats(path),
		Cost:  s.pf.LastResult().Cost,
	}
	if optimize {
		msg.Optimized = s.pf.OptimizePath(path)
	}
	return msg, nil
}

// Load replaces the grid contents with sc.
func (s *Session) Load(sc scenario.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := sc.Apply(s.grid); err != nil {
		return err
	}
	s.logger.Debug("scenario loaded", "name", sc.Name)
	return nil
}

// Snapshot copies the current cell kinds.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := s.grid.Cells()
	kinds := make([]uint8, len(cells))
	for i, c := range cells {
		kinds[i] = uint8(c.Kind)
	}
	return Snapshot{Width: s.grid.Width(), Height: s.grid.Height(), Kinds: kinds}
}
