package inpaint

import "container/heap"

// heapEntry is a narrow-band heap entry: (T, y, x), ordered by T
// ascending and ties broken by (y, x) lexicographic ascending.
type heapEntry struct {
	t    float64
	y, x int
}

// bandHeap is a container/heap.Interface min-heap over heapEntry. The
// driver may push the same pixel multiple times with progressively
// smaller T; a pop is only honored if the pixel is still Band (lazy
// deletion) — the same "skip if already visited" idiom
// used for Dijkstra's decrease-key-free priority queue.
type bandHeap []heapEntry

func (h bandHeap) Len() int { return len(h) }

func (h bandHeap) Less(i, j int) bool {
	if h[i].t != h[j].t {
		return h[i].t < h[j].t
	}
	if h[i].y != h[j].y {
		return h[i].y < h[j].y
	}
	return h[i].x < h[j].x
}

func (h bandHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *bandHeap) Push(x any) {
	*h = append(*h, x.(heapEntry))
}

func (h *bandHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

var _ heap.Interface = (*bandHeap)(nil)
