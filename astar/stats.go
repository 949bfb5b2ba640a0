package astar

// Stats measures path and reports how many cells the most recent search
// touched. PathCost uses raw step distances only: traffic multipliers and
// penalties that steered the search are not included. NodesExplored counts
// cells whose g score is positive, so the start cell never counts.
// A nil or empty path yields the zero Stats.
func (p *Pathfinder) Stats(path Path) Stats {
	if len(path) == 0 {
		return Stats{}
	}
	return Stats{
		PathLength:    len(path),
		PathCost:      PathCost(path),
		NodesExplored: p.explored(),
		Success:       true,
	}
}

// PathCost sums StepDistance over consecutive points of path.
func PathCost(path Path) float64 {
	var cost float64
	for i := 0; i+1 < len(path); i++ {
		cost += StepDistance(path[i], path[i+1])
	}
	return cost
}

func (p *Pathfinder) explored() int {
	n := 0
	for _, g := range p.g {
		if g > 0 {
			n++
		}
	}
	return n
}
