package grid

import (
	"math"
	"strings"
)

var kindGlyphs = [...]byte{
	Empty:   '.',
	Wall:    '#',
	Start:   'S',
	End:     'E',
	Path:    '*',
	Traffic: '~',
}

// Glyph returns the single-character rendering of k.
func (k Kind) Glyph() byte {
	if int(k) < len(kindGlyphs) {
		return kindGlyphs[k]
	}
	return '?'
}

// String renders the grid one row per line using Kind.Glyph.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteByte(g.cells[g.Index(x, y)].Kind.Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WorldToGrid converts world coordinates into the cell that contains them.
// A non-positive cellSize is treated as 1. The result may lie outside the grid.
func WorldToGrid(worldX, worldY, cellSize float64) Point {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Point{
		X: int(math.Floor(worldX / cellSize)),
		Y: int(math.Floor(worldY / cellSize)),
	}
}

// GridToWorld returns the world coordinates of the centre of cell (x,y).
func GridToWorld(x, y int, cellSize float64) (float64, float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	return float64(x)*cellSize + cellSize/2, float64(y)*cellSize + cellSize/2
}
