package vm

// ClockReplacer implements second-chance replacement.
//
// The hand sweeps the circular queue. A page with its referenced bit set has
// the bit cleared and is skipped; the first page found with the bit clear is
// the victim. One full sweep clears every bit, so a non-empty queue always
// yields a victim within two passes.
//
// Accesses also move the page to the most recent end of the queue, just
// behind the hand, so a recently used page is the last one the sweep reaches.
type ClockReplacer struct {
	queue *EvictionQueue
	bits  ReferenceBits
}

// Loaded does nothing: the loading access itself is recorded by Accessed
func (c *ClockReplacer) Loaded(int) {}

// Accessed moves page behind the hand
func (c *ClockReplacer) Accessed(page int) {
	c.queue.Push(page)
}

// Victim sweeps the hand until it finds an unreferenced page and removes it.
// The hand is left on the entry after the victim.
func (c *ClockReplacer) Victim() (int, bool) {
	for {
		page, ok := c.queue.Hand()
		if !ok {
			return -1, false
		}

		if !c.bits.Referenced(page) {
			return c.queue.PopHand()
		}

		// Second chance
		c.bits.ClearReferenced(page)
		c.queue.Advance()
	}
}

// Size returns the number of queued pages
func (c *ClockReplacer) Size() int {
	return c.queue.Len()
}
