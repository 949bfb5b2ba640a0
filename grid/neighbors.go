package grid

// Neighbor offsets in enumeration order: Up, Right, Down, Left,
// then Up-Right, Down-Right, Down-Left, Up-Left. Y grows downwards.
var (
	orthogonalOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagonalOffsets   = [4][2]int{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// Neighbors returns the walkable cells adjacent to (x,y): up to 4 orthogonal
// ones, plus up to 4 diagonal ones when allowDiagonal is set. A diagonal
// cell is skipped if either orthogonal cell it would squeeze past is blocked.
// The slice is freshly allocated on every call.
// Complexity: O(1).
func (g *Grid) Neighbors(x, y int, allowDiagonal bool) []Cell {
	out := make([]Cell, 0, 8)
	for _, d := range orthogonalOffsets {
		nx, ny := x+d[0], y+d[1]
		if g.IsWalkable(nx, ny) {
			out = append(out, g.cells[g.Index(nx, ny)])
		}
	}
	if !allowDiagonal {
		return out
	}
	for _, d := range diagonalOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.IsWalkable(nx, ny) || g.cornerBlocked(x, y, d[0], d[1]) {
			continue
		}
		out = append(out, g.cells[g.Index(nx, ny)])
	}

	return out
}

// cornerBlocked reports whether a diagonal step (dx,dy) from (x,y) would
// cut past a wall at (x+dx,y) or (x,y+dy). Out-of-bounds corners do not block.
func (g *Grid) cornerBlocked(x, y, dx, dy int) bool {
	blocked := func(cx, cy int) bool {
		return g.IsValidPosition(cx, cy) && !g.cells[g.Index(cx, cy)].Walkable
	}
	return blocked(x+dx, y) || blocked(x, y+dy)
}

// CanStep reports whether a single move from a to b is legal under the
// 8-directional model: b adjacent to a, walkable, and not cutting a corner.
func (g *Grid) CanStep(a, b Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
		return false
	}
	if !g.IsWalkable(b.X, b.Y) {
		return false
	}
	if dx != 0 && dy != 0 {
		return !g.cornerBlocked(a.X, a.Y, dx, dy)
	}
	return true
}
