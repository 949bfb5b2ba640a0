package scenario

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/pathless/grid"
)

// DefaultSize is the edge length of the built-in scenarios.
const DefaultSize = 30

// column returns the points (x, y0..y1) inclusive.
func column(x, y0, y1 int) []grid.Point {
	out := make([]grid.Point, 0, y1-y0+1)
	for y := y0; y <= y1; y++ {
		out = append(out, grid.Point{X: x, Y: y})
	}
	return out
}

// row returns the points (x0..x1, y) inclusive.
func row(y, x0, x1 int) []grid.Point {
	out := make([]grid.Point, 0, x1-x0+1)
	for x := x0; x <= x1; x++ {
		out = append(out, grid.Point{X: x, Y: y})
	}
	return out
}

func concat(parts ...[]grid.Point) []grid.Point {
	var out []grid.Point
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// builtins is rebuilt on every lookup so callers may mutate what they get.
func builtins() map[string]Scenario {
	return map[string]Scenario{
		"simple": {
			Name:        "simple",
			Description: "A direct route with no obstacles",
			Width:       DefaultSize, Height: DefaultSize,
			Start: grid.Point{X: 3, Y: 3}, End: grid.Point{X: 27, Y: 27},
		},
		"lShape": {
			Name:        "lShape",
			Description: "A wall in the middle forces the route to bend",
			Width:       DefaultSize, Height: DefaultSize,
			Start: grid.Point{X: 3, Y: 3}, End: grid.Point{X: 27, Y: 27},
			Walls: column(15, 6, 25),
		},
		"maze": {
			Name:        "maze",
			Description: "Several walls that require careful navigation",
			Width:       DefaultSize, Height: DefaultSize,
			Start: grid.Point{X: 2, Y: 2}, End: grid.Point{X: 28, Y: 28},
			Walls: concat(
				row(6, 6, 25),
				column(10, 10, 29),
				row(12, 20, 29),
				column(18, 18, 29),
			),
		},
		"impossible": {
			Name:        "impossible",
			Description: "A wall spanning the full height leaves no route",
			Width:       DefaultSize, Height: DefaultSize,
			Start: grid.Point{X: 3, Y: 3}, End: grid.Point{X: 27, Y: 27},
			Walls: column(15, 0, DefaultSize-1),
		},
	}
}

// Builtin returns the built-in scenario called name.
func Builtin(name string) (Scenario, error) {
	s, ok := builtins()[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return s, nil
}

// Builtins returns every built-in scenario sorted by name.
func Builtins() []Scenario {
	all := builtins()
	out := make([]Scenario, 0, len(all))
	for _, s := range all {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
