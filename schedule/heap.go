package schedule

// taskHeap is a container/heap.Interface ordering pending tasks by fire
// time, ties broken by enqueue sequence. A stdlib heap was kept over
// reaching for a third-party priority queue: see DESIGN.md.
type taskHeap []*taskEntry

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*taskEntry))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
