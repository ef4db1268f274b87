package vm

// LRUReplacer implements LRU (Least Recently Used) replacement policy.
// Every access moves the page to the most recent end, so the hand always
// sits on the least recently used page.
type LRUReplacer struct {
	queue *EvictionQueue
}

// Loaded does nothing: the loading access itself is recorded by Accessed
func (lru *LRUReplacer) Loaded(int) {}

// Accessed moves page to the most recently used position
func (lru *LRUReplacer) Accessed(page int) {
	lru.queue.Push(page)
}

// Victim evicts the least recently used page
func (lru *LRUReplacer) Victim() (int, bool) {
	return lru.queue.PopHand()
}

// Size returns the number of queued pages
func (lru *LRUReplacer) Size() int {
	return lru.queue.Len()
}
