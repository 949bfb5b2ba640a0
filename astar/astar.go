package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/pathless/grid"
)

const (
	stateUnseen uint8 = iota
	stateOpen
	stateClosed
)

// Pathfinder runs weighted A* over one grid. Search scores live in a table
// owned by the Pathfinder and indexed by grid.Grid.Index; the grid itself
// only changes when a found route is marked with grid.Path cells.
type Pathfinder struct {
	grid *grid.Grid
	opts Options

	// score table of the most recent search
	g, h, f []float64
	parent  []int // -1 for none
	state   []uint8
	items   []*queueItem

	last Result
}

// New binds a Pathfinder to g.
// Returns ErrNilGrid if g is nil.
func New(g *grid.Grid, opts ...Option) (*Pathfinder, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	n := g.Size()

	return &Pathfinder{
		grid:   g,
		opts:   cfg,
		g:      make([]float64, n),
		h:      make([]float64, n),
		f:      make([]float64, n),
		parent: make([]int, n),
		state:  make([]uint8, n),
		items:  make([]*queueItem, n),
	}, nil
}

// Grid returns the grid the Pathfinder searches.
func (p *Pathfinder) Grid() *grid.Grid { return p.grid }

// LastResult returns the outcome of the most recent search.
func (p *Pathfinder) LastResult() Result { return p.last }

// reset zeroes the score table and forgets the previous result.
func (p *Pathfinder) reset() {
	for i := range p.g {
		p.g[i], p.h[i], p.f[i] = 0, 0, 0
		p.parent[i] = -1
		p.state[i] = stateUnseen
		p.items[i] = nil
	}
	p.last = Result{}
}

// FindPath searches for a route from (startX,startY) to (endX,endY).
//
// Both endpoints must be inside the grid and walkable, otherwise
// ErrInvalidEndpoint is returned before anything is modified. A valid request
// first clears Path markers from the grid and resets the score table. On
// success the interior Empty cells of the route become grid.Path; when the
// goal is unreachable ErrNoPath is returned. The Path is nil on any error.
func (p *Pathfinder) FindPath(startX, startY, endX, endY int) (Path, error) {
	if !p.grid.IsWalkable(startX, startY) {
		return nil, fmt.Errorf("%w: start (%d,%d)", ErrInvalidEndpoint, startX, startY)
	}
	if !p.grid.IsWalkable(endX, endY) {
		return nil, fmt.Errorf("%w: end (%d,%d)", ErrInvalidEndpoint, endX, endY)
	}

	p.grid.ClearPath()
	p.reset()

	start := grid.Point{X: startX, Y: startY}
	goal := grid.Point{X: endX, Y: endY}
	path, found := p.search(start, goal)
	if !found {
		p.opts.Logger.Debug("search exhausted",
			"start", start.String(), "end", goal.String(), "expanded", p.last.Expanded)
		return nil, fmt.Errorf("%w: %v to %v", ErrNoPath, start, goal)
	}

	p.grid.MarkPath(path)
	p.opts.Logger.Debug("path found",
		"start", start.String(), "end", goal.String(),
		"length", len(path), "cost", p.last.Cost, "expanded", p.last.Expanded)

	return path, nil
}

// FindPathFromGrid searches between the grid's own start and end cells.
// Returns ErrEndpointsUnset if either is missing.
func (p *Pathfinder) FindPathFromGrid() (Path, error) {
	start, okStart := p.grid.Start()
	end, okEnd := p.grid.End()
	if !okStart || !okEnd {
		return nil, ErrEndpointsUnset
	}
	return p.FindPath(start.X, start.Y, end.X, end.Y)
}

// search is the A* main loop. It fills the score table and p.last.
func (p *Pathfinder) search(start, goal grid.Point) (Path, bool) {
	var (
		open     openSet
		seq      uint64
		expanded int
	)
	heap.Init(&open)

	startIdx := p.grid.Index(start.X, start.Y)
	goalIdx := p.grid.Index(goal.X, goal.Y)

	p.g[startIdx] = 0
	p.h[startIdx] = Heuristic(start, goal)
	p.f[startIdx] = p.g[startIdx] + p.h[startIdx]
	p.enqueue(&open, startIdx, &seq)

	for open.Len() > 0 {
		current := heap.Pop(&open).(*queueItem).cell
		if current == goalIdx {
			path := p.reconstruct(goalIdx)
			p.last = Result{Path: path, Cost: p.g[goalIdx], Expanded: expanded, Found: true}
			return path, true
		}

		p.state[current] = stateClosed
		expanded++
		cur := p.grid.Coordinate(current)
		p.opts.OnExpand(cur)

		for _, nb := range p.grid.Neighbors(cur.X, cur.Y, true) {
			ni := p.grid.Index(nb.X, nb.Y)
			if p.state[ni] == stateClosed {
				continue
			}
			tentativeG := p.g[current] + StepDistance(cur, nb.Point())*nb.Cost + penalty(nb)

			isNew := p.state[ni] != stateOpen
			if !isNew && tentativeG >= p.g[ni] {
				continue
			}

			p.parent[ni] = current
			p.g[ni] = tentativeG
			p.h[ni] = Heuristic(nb.Point(), goal)
			p.f[ni] = p.g[ni] + p.h[ni]
			if isNew {
				p.enqueue(&open, ni, &seq)
			} else {
				item := p.items[ni]
				item.f = p.f[ni]
				heap.Fix(&open, item.indexInQueue)
			}
		}
	}

	p.last = Result{Expanded: expanded}
	return nil, false
}

// enqueue adds cell idx to the open set with the next entry sequence.
func (p *Pathfinder) enqueue(open *openSet, idx int, seq *uint64) {
	item := &queueItem{cell: idx, f: p.f[idx], seq: *seq}
	*seq++
	p.items[idx] = item
	p.state[idx] = stateOpen
	heap.Push(open, item)
}

// reconstruct follows parent links from goal back to the start and
// returns the route in start→goal order.
func (p *Pathfinder) reconstruct(goal int) Path {
	var path Path
	for at := goal; at >= 0; at = p.parent[at] {
		path = append(path, p.grid.Coordinate(at))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
