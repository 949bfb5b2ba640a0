package astar

// queueItem is an open-set entry for one grid cell.
type queueItem struct {
	cell         int     // row-major cell index
	f            float64 // g + h
	seq          uint64  // order of entry into the open set, never updated
	indexInQueue int
}

// openSet is a min-heap on (f, seq) for container/heap.
type openSet []*queueItem

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].indexInQueue = i
	q[j].indexInQueue = j
}

func (q *openSet) Push(x any) {
	item := x.(*queueItem)
	item.indexInQueue = len(*q)
	*q = append(*q, item)
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.indexInQueue = -1
	*q = old[:n-1]
	return item
}
