package inpaint

import (
	"container/heap"
	"testing"
)

func TestBandHeapOrdersByTThenByYX(t *testing.T) {
	h := &bandHeap{}
	heap.Push(h, heapEntry{t: 2, y: 0, x: 0})
	heap.Push(h, heapEntry{t: 1, y: 5, x: 5})
	heap.Push(h, heapEntry{t: 1, y: 1, x: 9})
	heap.Push(h, heapEntry{t: 1, y: 1, x: 2})

	var got []heapEntry
	for h.Len() > 0 {
		got = append(got, heap.Pop(h).(heapEntry))
	}

	want := []heapEntry{
		{t: 1, y: 1, x: 2},
		{t: 1, y: 1, x: 9},
		{t: 1, y: 5, x: 5},
		{t: 2, y: 0, x: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBandHeapLazyDeletionPattern(t *testing.T) {
	// The driver pushes the same pixel with progressively smaller T; the
	// smallest pops first and later, staler entries are discarded by the
	// caller checking the flag field, not by the heap itself.
	h := &bandHeap{}
	heap.Push(h, heapEntry{t: 5, y: 0, x: 0})
	heap.Push(h, heapEntry{t: 2, y: 0, x: 0})
	first := heap.Pop(h).(heapEntry)
	if first.t != 2 {
		t.Fatalf("first pop T = %v, want 2", first.t)
	}
}
