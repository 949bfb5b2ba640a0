package astar

import (
	"math"

	"github.com/katalvlaran/pathless/grid"
)

// trafficPenalty is added on top of the ×2 traffic cost multiplier.
const trafficPenalty = 2.0

// Heuristic is the Euclidean distance between a and b.
func Heuristic(a, b grid.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// StepDistance is the unweighted cost of moving from a to b: √2 when both
// deltas are ±1, otherwise the Manhattan distance (1 for an orthogonal step).
func StepDistance(a, b grid.Point) float64 {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	if dx == 1 && dy == 1 {
		return math.Sqrt2
	}
	return float64(dx + dy)
}

// penalty is the flat surcharge for entering c.
func penalty(c grid.Cell) float64 {
	if c.Kind == grid.Traffic {
		return trafficPenalty
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
