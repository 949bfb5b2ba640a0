package astar

import "math"

// angleTolerance is the largest heading change, in radians, treated as
// "still going straight".
const angleTolerance = 0.1

// OptimizePath is Simplify bound to the Pathfinder for API symmetry.
func (p *Pathfinder) OptimizePath(path Path) Path {
	return Simplify(path)
}

// Simplify drops interior points where the route does not turn. For each
// interior point the heading from the last kept point is compared with the
// heading to the next point; the point is kept only when they differ by more
// than angleTolerance. First and last points are always kept. Paths of two
// or fewer points are returned as is.
// Complexity: O(len(path)).
func Simplify(path Path) Path {
	if len(path) <= 2 {
		return path
	}
	out := make(Path, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := out[len(out)-1], path[i], path[i+1]
		in := math.Atan2(float64(cur.Y-prev.Y), float64(cur.X-prev.X))
		outAngle := math.Atan2(float64(next.Y-cur.Y), float64(next.X-cur.X))
		if math.Abs(in-outAngle) > angleTolerance {
			out = append(out, cur)
		}
	}
	return append(out, path[len(path)-1])
}
