package grid

// Grid is a fixed-size rectangle of cells stored row-major.
// The zero value is not usable; construct with New.
type Grid struct {
	width, height int
	cells         []Cell

	start, end       Point
	hasStart, hasEnd bool
}

// New builds a width×height grid of Empty cells.
// Returns ErrInvalidSize if either dimension is below 1.
// Complexity: O(W×H) time and memory.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	g.reset()

	return g, nil
}

// reset reinitialises every cell to Empty and forgets start/end.
func (g *Grid) reset() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.cells[g.Index(x, y)] = Cell{X: x, Y: y, Kind: Empty, Walkable: true, Cost: 1}
		}
	}
	g.start, g.end = Point{}, Point{}
	g.hasStart, g.hasEnd = false, false
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// Index maps (x,y) to a row-major index: y*Width + x.
// The result is meaningless for positions outside the grid.
// Complexity: O(1).
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to a Point.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Point {
	return Point{X: idx % g.width, Y: idx / g.width}
}

// IsValidPosition reports whether (x,y) lies within the grid.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SetCellType assigns kind to the cell at (x,y) and derives its walkability
// and cost. It is the only way a cell's kind changes outside of the bulk
// resets and MarkPath. Placing a Start (End) demotes any previous Start (End)
// cell to Empty so at most one of each exists.
// Returns false if (x,y) is outside the grid.
func (g *Grid) SetCellType(x, y int, kind Kind) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	c := &g.cells[g.Index(x, y)]

	switch c.Kind {
	case Start:
		g.hasStart = false
	case End:
		g.hasEnd = false
	}

	switch kind {
	case Start:
		if g.hasStart {
			g.assign(&g.cells[g.Index(g.start.X, g.start.Y)], Empty)
		}
		g.start, g.hasStart = Point{X: x, Y: y}, true
	case End:
		if g.hasEnd {
			g.assign(&g.cells[g.Index(g.end.X, g.end.Y)], Empty)
		}
		g.end, g.hasEnd = Point{X: x, Y: y}, true
	}
	g.assign(c, kind)

	return true
}

// assign writes kind and its derived attributes into c.
func (g *Grid) assign(c *Cell, kind Kind) {
	c.Kind = kind
	c.Walkable = kind.walkable()
	c.Cost = kind.cost()
}

// Cell returns a copy of the cell at (x,y).
func (g *Grid) Cell(x, y int) (Cell, bool) {
	if !g.IsValidPosition(x, y) {
		return Cell{}, false
	}
	return g.cells[g.Index(x, y)], true
}

// CellType returns the kind of the cell at (x,y).
func (g *Grid) CellType(x, y int) (Kind, bool) {
	if !g.IsValidPosition(x, y) {
		return Empty, false
	}
	return g.cells[g.Index(x, y)].Kind, true
}

// IsWalkable is false for positions outside the grid and for walls.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	return g.cells[g.Index(x, y)].Walkable
}

// Start returns the start pointer.
func (g *Grid) Start() (Point, bool) { return g.start, g.hasStart }

// End returns the end pointer.
func (g *Grid) End() (Point, bool) { return g.end, g.hasEnd }

// Cells returns a row-major copy of every cell.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
