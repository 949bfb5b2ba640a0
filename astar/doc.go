// Package astar finds minimum-cost routes on a grid.Grid with weighted A*.
//
// Movement model:
//
//   - 8 directions; diagonal steps may not cut a blocked corner (see grid.Grid.Neighbors).
//   - Step cost = StepDistance(from, to) × to.Cost, plus a flat 2 when entering Traffic.
//     Traffic therefore pays twice: once through its ×2 cost and once additively.
//   - Heuristic is the Euclidean distance to the goal. With weighted cells it is
//     not guaranteed admissible, so routes over Traffic are good but not provably optimal.
//
// Open-set ordering:
//
//	The open set is a binary heap keyed by (f, entry order). Among cells with
//	equal f, the one that entered the open set first is expanded first; a
//	decrease-key never changes a cell's entry order. This reproduces a linear
//	"first minimum wins" scan exactly, so routes are deterministic.
//
// Statistics:
//
//	Stats.PathCost re-measures a route with raw step distances (√2 diagonal,
//	1 orthogonal) and ignores cell costs and traffic penalties. The weighted
//	cost the search actually minimised is Result.Cost from LastResult.
//
// Complexity:
//
//   - FindPath: O(N log N) time, O(N) memory, N = W×H.
//   - Stats:    O(len(path) + N).
//   - Simplify: O(len(path)).
//
// Errors:
//
//   - ErrNilGrid: New received a nil grid.
//   - ErrInvalidEndpoint: start or end outside the grid or on a wall.
//   - ErrNoPath: the open set emptied before reaching the goal.
//   - ErrEndpointsUnset: FindPathFromGrid on a grid missing start or end.
//
// A Pathfinder keeps its score table between calls (for Stats) and must not
// be used from several goroutines at once.
package astar
