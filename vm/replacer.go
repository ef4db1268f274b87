package vm

// Replacer interface for page replacement policies.
// All policies order resident pages in a shared EvictionQueue; they differ in
// when pages are pushed and how the victim is taken from the hand.
type Replacer interface {
	// Loaded records a page that just became resident
	Loaded(page int)

	// Accessed records an access to a resident page, including the access
	// that caused it to be loaded
	Accessed(page int)

	// Victim selects a page to evict and removes it from the queue.
	// Returns false if no page is queued.
	Victim() (int, bool)

	// Size returns the number of queued pages
	Size() int
}

// ReferenceBits gives the Clock policy access to the per-page referenced flag,
// which is owned by the page table entry
type ReferenceBits interface {
	Referenced(page int) bool
	ClearReferenced(page int)
}

// NewReplacer creates a replacer for the given policy over queue
func NewReplacer(policy Policy, queue *EvictionQueue, bits ReferenceBits) (Replacer, error) {
	switch policy {
	case PolicyFIFO:
		return &FIFOReplacer{queue: queue}, nil
	case PolicyLRU:
		return &LRUReplacer{queue: queue}, nil
	case PolicyClock:
		if bits == nil {
			return nil, ErrInvalidConfig("NewReplacer", "clock policy needs reference bits")
		}
		return &ClockReplacer{queue: queue, bits: bits}, nil
	default:
		return nil, ErrInvalidConfig("NewReplacer", "unknown replacement policy "+policy.String())
	}
}

// FIFOReplacer evicts pages in the order they were loaded.
// Hits never reorder the queue.
type FIFOReplacer struct {
	queue *EvictionQueue
}

func (f *FIFOReplacer) Loaded(page int) {
	f.queue.Push(page)
}

func (f *FIFOReplacer) Accessed(int) {}

// Victim evicts the oldest loaded page
func (f *FIFOReplacer) Victim() (int, bool) {
	return f.queue.PopHand()
}

func (f *FIFOReplacer) Size() int {
	return f.queue.Len()
}
