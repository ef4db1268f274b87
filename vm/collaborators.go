package vm

//go:generate mockgen -destination=mock_collaborators_test.go -package=vm github.com/sibexico/pagesim/vm FrameAllocator,BackingStore,StatsRecorder,AccessObserver

// FrameAllocator hands out physical frames that no page occupies
type FrameAllocator interface {
	// FindFreeFrame returns an unused frame, or false when every frame is taken
	FindFreeFrame() (FrameID, bool)
}

// BackingStore moves page images between frames and swap
type BackingStore interface {
	// LoadFrame brings page into frame at time t
	LoadFrame(frame FrameID, page int, t Tick) error

	// SaveFrame writes a modified frame back before it is reused
	SaveFrame(frame FrameID) error
}

// StatsRecorder counts page table events
type StatsRecorder interface {
	RecordPageFault()
	RecordPageHit()

	// RecordEviction is called once per evicted page. dirty is true when the
	// page was written back; resident is how long the page stayed loaded.
	RecordEviction(dirty bool, resident Tick)
}

// AccessObserver receives every completed access
type AccessObserver interface {
	ObserveAccess(event AccessEvent)
}
