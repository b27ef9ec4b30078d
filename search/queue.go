package search

import "container/heap"

// openItem is one entry in the open set: a node plus the f-value it was
// queued with and the order it was inserted in, for deterministic
// tie-breaking (spec.md §4.E / §5: ties break on insertion order so that
// identical inputs produce byte-identical outputs).
type openItem[N Node] struct {
	node N
	f    float64
	seq  int
}

// openSet is a binary min-heap over openItem, ordered by f and then
// insertion order. It is the A* priority queue. Grounded on the
// container/heap wrapper idiom used for priority search elsewhere in the
// retrieval pack (afb2001-CCOM_planner/search/queues.go), since the teacher
// repo itself has no heap-based search to draw from directly.
type openSet[N Node] struct {
	items []*openItem[N]
}

func (q *openSet[N]) Len() int { return len(q.items) }

func (q *openSet[N]) Less(i, j int) bool {
	if q.items[i].f != q.items[j].f {
		return q.items[i].f < q.items[j].f
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *openSet[N]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *openSet[N]) Push(x any) { q.items = append(q.items, x.(*openItem[N])) }

func (q *openSet[N]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

func newOpenSet[N Node]() *openSet[N] {
	q := &openSet[N]{}
	heap.Init(q)
	return q
}

func (q *openSet[N]) push(node N, f float64, seq int) {
	heap.Push(q, &openItem[N]{node: node, f: f, seq: seq})
}

func (q *openSet[N]) pop() *openItem[N] {
	return heap.Pop(q).(*openItem[N])
}
