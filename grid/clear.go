package grid

// ClearAll reinitialises every cell to Empty and clears start and end.
// Complexity: O(W×H).
func (g *Grid) ClearAll() {
	g.reset()
}

// ClearWalls turns every Wall and Traffic cell back into Empty.
// Start, End and Path cells are left alone.
// Complexity: O(W×H).
func (g *Grid) ClearWalls() {
	for i := range g.cells {
		if k := g.cells[i].Kind; k == Wall || k == Traffic {
			g.assign(&g.cells[i], Empty)
		}
	}
}

// ClearPath turns every Path cell back into Empty.
// Search scores are owned by the searcher, not the grid, so nothing else
// needs resetting between searches.
// Complexity: O(W×H).
func (g *Grid) ClearPath() {
	for i := range g.cells {
		if g.cells[i].Kind == Path {
			g.assign(&g.cells[i], Empty)
		}
	}
}

// MarkPath turns the interior points of path into Path cells. The first and
// last points are never touched, and only cells that are currently Empty
// change. Points outside the grid are ignored.
func (g *Grid) MarkPath(path []Point) {
	for i := 1; i < len(path)-1; i++ {
		p := path[i]
		if !g.IsValidPosition(p.X, p.Y) {
			continue
		}
		if c := &g.cells[g.Index(p.X, p.Y)]; c.Kind == Empty {
			g.assign(c, Path)
		}
	}
}

// Stats counts walls, traffic and path cells and reports start/end.
// Complexity: O(W×H).
func (g *Grid) Stats() Stats {
	s := Stats{
		TotalCells: len(g.cells),
		Start:      g.start,
		End:        g.end,
		HasStart:   g.hasStart,
		HasEnd:     g.hasEnd,
	}
	for i := range g.cells {
		switch g.cells[i].Kind {
		case Wall:
			s.Walls++
		case Traffic:
			s.Traffic++
		case Path:
			s.PathCells++
		}
	}

	return s
}
