package vm

// noNode marks an empty hand or a page without a queue node
const noNode int32 = -1

// queueNode is one slot in the eviction queue arena.
// prev and next are arena indices, never pointers.
type queueNode struct {
	page int
	prev int32
	next int32
}

// EvictionQueue is a circular ordered sequence of resident page numbers.
//
// Nodes live in an arena and refer to each other by index. Slots freed by
// PopHand go on a free list and are reused by later pushes, so a page's node
// exists exactly while the page is queued. The hand marks the removal point:
// the oldest entry for FIFO and LRU, the next entry to examine for Clock.
// The most recent end of the queue is the node just behind the hand.
type EvictionQueue struct {
	nodes []queueNode
	free  []int32
	slot  []int32 // page number -> arena index, noNode when absent
	hand  int32
	size  int
}

// NewEvictionQueue creates an empty queue for pages [0, pageCount)
func NewEvictionQueue(pageCount int) *EvictionQueue {
	slot := make([]int32, pageCount)
	for i := range slot {
		slot[i] = noNode
	}

	return &EvictionQueue{
		nodes: make([]queueNode, 0, pageCount),
		slot:  slot,
		hand:  noNode,
	}
}

// Push places page at the most recent end of the queue.
// A page already queued is spliced out and re-inserted; no node is created.
func (q *EvictionQueue) Push(page int) {
	idx := q.slot[page]

	if idx == noNode {
		idx = q.alloc(page)
		q.size++
		if q.hand == noNode {
			q.nodes[idx].prev = idx
			q.nodes[idx].next = idx
			q.hand = idx
			return
		}
	} else {
		if q.size == 1 {
			return
		}
		if idx == q.hand {
			q.hand = q.nodes[idx].next
		}
		q.unlink(idx)
	}

	q.insertBeforeHand(idx)
}

// PopHand removes the page at the hand and moves the hand to the next entry.
// Returns false when the queue is empty.
func (q *EvictionQueue) PopHand() (int, bool) {
	if q.hand == noNode {
		return -1, false
	}

	idx := q.hand
	page := q.nodes[idx].page

	if q.size == 1 {
		q.hand = noNode
	} else {
		q.hand = q.nodes[idx].next
		q.unlink(idx)
	}

	q.release(idx)
	return page, true
}

// Advance moves the hand one entry forward
func (q *EvictionQueue) Advance() {
	if q.hand != noNode {
		q.hand = q.nodes[q.hand].next
	}
}

// Hand returns the page under the hand
func (q *EvictionQueue) Hand() (int, bool) {
	if q.hand == noNode {
		return -1, false
	}
	return q.nodes[q.hand].page, true
}

// Contains reports whether page is queued
func (q *EvictionQueue) Contains(page int) bool {
	if page < 0 || page >= len(q.slot) {
		return false
	}
	return q.slot[page] != noNode
}

// Len returns the number of queued pages
func (q *EvictionQueue) Len() int {
	return q.size
}

// Pages returns the queued pages starting at the hand
func (q *EvictionQueue) Pages() []int {
	pages := make([]int, 0, q.size)
	if q.hand == noNode {
		return pages
	}

	idx := q.hand
	for i := 0; i < q.size; i++ {
		pages = append(pages, q.nodes[idx].page)
		idx = q.nodes[idx].next
	}
	return pages
}

func (q *EvictionQueue) alloc(page int) int32 {
	var idx int32
	if n := len(q.free); n > 0 {
		idx = q.free[n-1]
		q.free = q.free[:n-1]
	} else {
		q.nodes = append(q.nodes, queueNode{})
		idx = int32(len(q.nodes) - 1)
	}

	q.nodes[idx] = queueNode{page: page, prev: noNode, next: noNode}
	q.slot[page] = idx
	return idx
}

func (q *EvictionQueue) release(idx int32) {
	q.slot[q.nodes[idx].page] = noNode
	q.nodes[idx] = queueNode{page: -1, prev: noNode, next: noNode}
	q.free = append(q.free, idx)
	q.size--
}

func (q *EvictionQueue) unlink(idx int32) {
	n := q.nodes[idx]
	q.nodes[n.prev].next = n.next
	q.nodes[n.next].prev = n.prev
}

func (q *EvictionQueue) insertBeforeHand(idx int32) {
	tail := q.nodes[q.hand].prev
	q.nodes[idx].prev = tail
	q.nodes[idx].next = q.hand
	q.nodes[tail].next = idx
	q.nodes[q.hand].prev = idx
}
