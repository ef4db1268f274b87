// Package memory models physical memory for the page table: a fixed set of
// frames backed by one mapped arena, and the swap store that page images
// move to and from.
package memory

import (
	"fmt"

	"github.com/sibexico/pagesim/vm"
)

// Memory is the physical memory of one simulation.
// It implements vm.FrameAllocator and vm.BackingStore.
type Memory struct {
	nFrames   int
	frameSize int
	arena     []byte
	owner     []int // frame -> page it holds, -1 when never loaded
	nextFree  int
	store     PageStore

	loads uint64
	saves uint64
}

// New creates a memory of nFrames frames, each the size of a store page
func New(nFrames int, store PageStore) (*Memory, error) {
	if nFrames <= 0 {
		return nil, fmt.Errorf("frame count must be greater than 0")
	}
	if store == nil {
		return nil, fmt.Errorf("page store is required")
	}

	frameSize := store.PageSize()
	if frameSize <= 0 {
		return nil, fmt.Errorf("frame size must be greater than 0")
	}

	arena, err := mapArena(nFrames * frameSize)
	if err != nil {
		return nil, err
	}

	owner := make([]int, nFrames)
	for i := range owner {
		owner[i] = -1
	}

	return &Memory{
		nFrames:   nFrames,
		frameSize: frameSize,
		arena:     arena,
		owner:     owner,
		store:     store,
	}, nil
}

// FindFreeFrame hands out each frame once, in order.
// Frames freed by eviction are reused by the page table directly.
func (m *Memory) FindFreeFrame() (vm.FrameID, bool) {
	if m.nextFree >= m.nFrames {
		return vm.NoFrame, false
	}

	frame := vm.FrameID(m.nextFree)
	m.nextFree++
	return frame, true
}

// LoadFrame copies the stored image of page into frame
func (m *Memory) LoadFrame(frame vm.FrameID, page int, _ vm.Tick) error {
	buf, err := m.frame(frame)
	if err != nil {
		return err
	}

	data, err := m.store.ReadPage(page)
	if err != nil {
		return fmt.Errorf("failed to read page %d: %w", page, err)
	}

	copy(buf, data)
	m.owner[frame] = page
	m.loads++
	return nil
}

// SaveFrame writes frame back to the slot of the page it holds
func (m *Memory) SaveFrame(frame vm.FrameID) error {
	buf, err := m.frame(frame)
	if err != nil {
		return err
	}

	page := m.owner[frame]
	if page < 0 {
		return fmt.Errorf("frame %d holds no page", frame)
	}

	if err := m.store.WritePage(page, buf); err != nil {
		return fmt.Errorf("failed to write page %d: %w", page, err)
	}

	m.saves++
	return nil
}

// Write copies data into frame at offset
func (m *Memory) Write(frame vm.FrameID, offset int, data []byte) error {
	buf, err := m.frame(frame)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > len(buf) {
		return fmt.Errorf("write of %d bytes at offset %d overflows frame of %d bytes", len(data), offset, len(buf))
	}

	copy(buf[offset:], data)
	return nil
}

// Read returns a copy of the bytes held in frame
func (m *Memory) Read(frame vm.FrameID) ([]byte, error) {
	buf, err := m.frame(frame)
	if err != nil {
		return nil, err
	}

	data := make([]byte, len(buf))
	copy(data, buf)
	return data, nil
}

// Owner returns the page last loaded into frame
func (m *Memory) Owner(frame vm.FrameID) (int, bool) {
	if frame < 0 || int(frame) >= m.nFrames || m.owner[frame] < 0 {
		return -1, false
	}
	return m.owner[frame], true
}

func (m *Memory) frame(frame vm.FrameID) ([]byte, error) {
	if m.arena == nil {
		return nil, fmt.Errorf("memory is closed")
	}
	if frame < 0 || int(frame) >= m.nFrames {
		return nil, fmt.Errorf("invalid frame %d (memory holds %d frames)", frame, m.nFrames)
	}

	start := int(frame) * m.frameSize
	return m.arena[start : start+m.frameSize], nil
}

// FrameCount returns the number of physical frames
func (m *Memory) FrameCount() int {
	return m.nFrames
}

// FrameSize returns the size of one frame in bytes
func (m *Memory) FrameSize() int {
	return m.frameSize
}

// FramesInUse returns how many frames have been handed out
func (m *Memory) FramesInUse() int {
	return m.nextFree
}

// Loads returns the number of page images loaded into frames
func (m *Memory) Loads() uint64 {
	return m.loads
}

// Saves returns the number of frames written back
func (m *Memory) Saves() uint64 {
	return m.saves
}

// Store returns the backing page store
func (m *Memory) Store() PageStore {
	return m.store
}

// Close releases the frame arena and closes the page store
func (m *Memory) Close() error {
	var err error
	if m.arena != nil {
		err = unmapArena(m.arena)
		m.arena = nil
	}

	if cerr := m.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
