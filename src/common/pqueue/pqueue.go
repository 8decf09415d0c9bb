package pqueue

import "container/heap"

// Queue is a binary-heap min-priority queue over (value, priority) pairs.
// There is no decrease-key: callers re-push a value at an improved priority
// and discard stale entries on pop, which keeps the structure trivial and
// is plenty fast at the graph sizes a metro network produces.
type Queue[T any] struct {
	h itemHeap[T]
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push inserts value at the given priority.
func (q *Queue[T]) Push(value T, priority float64) {
	heap.Push(&q.h, item[T]{value: value, priority: priority})
}

// Pop removes and returns the value with the smallest priority. The second
// return value is false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, false
	}
	it := heap.Pop(&q.h).(item[T])
	return it.value, true
}

// Empty reports whether the queue holds no items.
func (q *Queue[T]) Empty() bool {
	return q.h.Len() == 0
}

// Len returns the number of queued items, stale entries included.
func (q *Queue[T]) Len() int {
	return q.h.Len()
}

type item[T any] struct {
	value    T
	priority float64
}

type itemHeap[T any] []item[T]

func (h itemHeap[T]) Len() int           { return len(h) }
func (h itemHeap[T]) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h itemHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[T]) Push(x interface{}) {
	*h = append(*h, x.(item[T]))
}

func (h *itemHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
