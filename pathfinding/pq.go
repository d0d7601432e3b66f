package pathfinding

// frontierItem is one heap entry: a cell index with the distance it was
// pushed at and the sequence number of its first discovery.
type frontierItem struct {
	index int
	dist  int
	seq   int
}

// frontier is a min-heap ordered by distance, ties broken by discovery order.
// Stale entries are left in place and skipped when popped.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
