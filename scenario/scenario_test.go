package scenario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathless/astar"
	"github.com/katalvlaran/pathless/grid"
	"github.com/katalvlaran/pathless/scenario"
)

// TestBuiltins lists the built-in scenarios in name order.
func TestBuiltins(t *testing.T) {
	var names []string
	for _, s := range scenario.Builtins() {
		names = append(names, s.Name)
		assert.NoError(t, s.Validate(), s.Name)
	}
	assert.Equal(t, []string{"impossible", "lShape", "maze", "simple"}, names)

	_, err := scenario.Builtin("spiral")
	assert.ErrorIs(t, err, scenario.ErrUnknownScenario)
}

// TestBuiltin_Routes runs A* on every built-in layout.
func TestBuiltin_Routes(t *testing.T) {
	cases := []struct {
		name     string
		walls    int
		found    bool
		length   int
		expanded int
	}{
		{"simple", 0, true, 25, 24},
		{"lShape", 20, true, 36, 451},
		{"maze", 62, true, 31, 144},
		{"impossible", 30, false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := scenario.Builtin(tc.name)
			require.NoError(t, err)
			g, err := s.NewGrid()
			require.NoError(t, err)
			assert.Equal(t, tc.walls, g.Stats().Walls)

			pf, err := astar.New(g)
			require.NoError(t, err)
			path, err := pf.FindPathFromGrid()
			if !tc.found {
				assert.ErrorIs(t, err, astar.ErrNoPath)
				assert.Nil(t, path)
				return
			}
			require.NoError(t, err)
			assert.Len(t, path, tc.length)
			assert.Equal(t, s.Start, path[0])
			assert.Equal(t, s.End, path[len(path)-1])
			assert.Equal(t, tc.expanded, pf.LastResult().Expanded)
		})
	}
}

// TestBuiltin_IsFreshCopy ensures callers cannot corrupt the built-ins.
func TestBuiltin_IsFreshCopy(t *testing.T) {
	s, err := scenario.Builtin("lShape")
	require.NoError(t, err)
	s.Walls[0] = grid.Point{X: 0, Y: 0}

	again, err := scenario.Builtin("lShape")
	require.NoError(t, err)
	assert.Equal(t, grid.Point{X: 15, Y: 6}, again.Walls[0])
}

// TestValidate covers naming, sizing and bounds errors.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		s    scenario.Scenario
		err  error
	}{
		{"NoName", scenario.Scenario{Width: 3, Height: 3}, scenario.ErrInvalid},
		{"NegativeSize", scenario.Scenario{Name: "x", Width: -1, Height: 3}, scenario.ErrInvalid},
		{"EndOutside", scenario.Scenario{Name: "x", Width: 3, Height: 3, End: grid.Point{X: 3, Y: 0}}, scenario.ErrOutOfBounds},
		{"WallOutside", scenario.Scenario{Name: "x", Width: 3, Height: 3, Walls: []grid.Point{{X: 0, Y: 5}}}, scenario.ErrOutOfBounds},
		{"Unsized", scenario.Scenario{Name: "x", Walls: []grid.Point{{X: 50, Y: 50}}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestApply writes endpoints over obstacles and replaces earlier content.
func TestApply(t *testing.T) {
	g, err := grid.New(4, 2)
	require.NoError(t, err)
	g.SetCellType(3, 1, grid.Wall)

	s := scenario.Scenario{
		Name:    "overlap",
		Start:   grid.Point{X: 0, Y: 0},
		End:     grid.Point{X: 3, Y: 0},
		Walls:   []grid.Point{{X: 1, Y: 0}, {X: 0, Y: 0}},
		Traffic: []grid.Point{{X: 2, Y: 1}},
	}
	require.NoError(t, s.Apply(g))
	assert.Equal(t, "S#.E\n..~.\n", g.String())
}

// TestApply_Rejects leaves the grid untouched on error.
func TestApply_Rejects(t *testing.T) {
	g, err := grid.New(4, 4)
	require.NoError(t, err)
	g.SetCellType(1, 1, grid.Wall)

	sized := scenario.Scenario{Name: "big", Width: 5, Height: 5}
	assert.ErrorIs(t, sized.Apply(g), scenario.ErrSizeMismatch)

	outside := scenario.Scenario{Name: "far", End: grid.Point{X: 4, Y: 0}}
	assert.ErrorIs(t, outside.Apply(g), scenario.ErrOutOfBounds)

	assert.Equal(t, 1, g.Stats().Walls)
}

// TestCapture round-trips a layout through Capture and Apply.
func TestCapture(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	g.SetCellType(0, 0, grid.Start)
	g.SetCellType(2, 2, grid.End)
	g.SetCellType(1, 1, grid.Wall)
	g.SetCellType(2, 0, grid.Traffic)
	g.SetCellType(0, 1, grid.Path)

	s := scenario.Capture("snap", g)
	assert.Equal(t, scenario.Scenario{
		Name:    "snap",
		Width:   3,
		Height:  3,
		Start:   grid.Point{X: 0, Y: 0},
		End:     grid.Point{X: 2, Y: 2},
		Walls:   []grid.Point{{X: 1, Y: 1}},
		Traffic: []grid.Point{{X: 2, Y: 0}},
	}, s)

	other, err := s.NewGrid()
	require.NoError(t, err)
	assert.Equal(t, "S.~\n.#.\n..E\n", other.String())
}
