package vm

import (
	"fmt"
	"io"
	"log/slog"
)

// pte is one page table entry
type pte struct {
	status     Status
	modified   bool // written since loaded
	frame      FrameID
	accessTime Tick
	loadTime   Tick
	peeks      uint64 // read accesses
	pokes      uint64 // write accesses
	referenced bool   // Clock reference bit
}

func (p *pte) reset() {
	p.modified = false
	p.referenced = false
	p.frame = NoFrame
	p.accessTime = NoTick
	p.loadTime = NoTick
}

// PageTable owns the state of every virtual page of one simulation.
// It is the only place where a page's status changes.
//
// A PageTable is not safe for concurrent use: simulated time is a single
// thread and every call completes before the next begins.
type PageTable struct {
	policy   Policy
	entries  []pte
	queue    *EvictionQueue
	replacer Replacer

	frames FrameAllocator
	store  BackingStore
	stats  StatsRecorder

	observer AccessObserver
	logger   *slog.Logger
}

// NewPageTable creates a page table with pageCount unused entries
func NewPageTable(policy Policy, pageCount int, frames FrameAllocator, store BackingStore, stats StatsRecorder) (*PageTable, error) {
	if pageCount <= 0 {
		return nil, ErrInvalidConfig("NewPageTable", "page count must be greater than 0")
	}
	if !policy.Valid() {
		return nil, ErrInvalidConfig("NewPageTable", "unknown replacement policy "+policy.String())
	}
	if frames == nil || store == nil || stats == nil {
		return nil, ErrInvalidConfig("NewPageTable", "frame allocator, backing store and stats recorder are required")
	}

	pt := &PageTable{
		policy:  policy,
		entries: make([]pte, pageCount),
		queue:   NewEvictionQueue(pageCount),
		frames:  frames,
		store:   store,
		stats:   stats,
		logger:  slog.New(slog.DiscardHandler),
	}

	for i := range pt.entries {
		pt.entries[i] = pte{status: StatusUnused}
		pt.entries[i].reset()
	}

	replacer, err := NewReplacer(policy, pt.queue, pt)
	if err != nil {
		return nil, err
	}
	pt.replacer = replacer

	return pt, nil
}

// SetLogger sets the logger used for load and eviction debug output
func (pt *PageTable) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pt.logger = logger
}

// SetObserver registers an observer that sees every completed access
func (pt *PageTable) SetObserver(observer AccessObserver) {
	pt.observer = observer
}

// Policy returns the active replacement policy
func (pt *PageTable) Policy() Policy {
	return pt.policy
}

// PageCount returns the number of virtual pages
func (pt *PageTable) PageCount() int {
	return len(pt.entries)
}

// RequestPage makes page available in mode at time t and returns its frame.
//
// On a miss the page is loaded into a free frame, or into the frame of a
// victim chosen by the replacement policy; a modified victim is saved first.
// Every returned error is fatal to the simulation run.
func (pt *PageTable) RequestPage(page int, mode AccessMode, t Tick) (FrameID, error) {
	if page < 0 || page >= len(pt.entries) {
		return NoFrame, ErrInvalidPage("RequestPage", page, len(pt.entries))
	}
	if !mode.Valid() {
		return NoFrame, ErrInvalidMode("RequestPage", mode)
	}

	p := &pt.entries[page]
	event := AccessEvent{Time: t, Page: page, Mode: mode, Victim: -1}

	switch p.status {
	case StatusUnused, StatusSwapped:
		pt.stats.RecordPageFault()
		event.Fault = true

		frame, ok := pt.frames.FindFreeFrame()
		if !ok {
			victim, wroteBack, err := pt.evict(t)
			if err != nil {
				return NoFrame, err
			}
			frame = victim.frame
			event.Victim = victim.page
			event.WroteBack = wroteBack
		}

		pt.logger.Debug("page given frame", "page", page, "frame", frame, "tick", t)

		if err := pt.store.LoadFrame(frame, page, t); err != nil {
			return NoFrame, ErrBackingStore("RequestPage", fmt.Errorf("load page %d into frame %d: %w", page, frame, err))
		}

		p.status = StatusResident
		p.modified = false
		p.frame = frame
		p.loadTime = t

		pt.replacer.Loaded(page)

	case StatusResident:
		pt.stats.RecordPageHit()

	default:
		return NoFrame, ErrInvalidStatus("RequestPage", page, p.status)
	}

	switch mode {
	case ModeRead:
		p.peeks++
	case ModeWrite:
		p.pokes++
		p.modified = true
	}
	p.accessTime = t

	if pt.policy.tracksAccess() {
		pt.replacer.Accessed(page)
		p.referenced = true
	}

	event.Frame = p.frame
	if pt.observer != nil {
		pt.observer.ObserveAccess(event)
	}

	return p.frame, nil
}

// evicted describes the page removed by evict
type evicted struct {
	page  int
	frame FrameID
}

// evict removes the policy's victim from memory and returns its freed frame
func (pt *PageTable) evict(t Tick) (evicted, bool, error) {
	victim, ok := pt.replacer.Victim()
	if !ok {
		return evicted{}, false, ErrNoVictim("evict")
	}

	v := &pt.entries[victim]
	if v.status != StatusResident || v.frame == NoFrame {
		return evicted{}, false, ErrInconsistent("evict",
			fmt.Sprintf("victim page %d is not resident (status %s)", victim, v.status))
	}

	frame := v.frame
	dirty := v.modified
	resident := t - v.loadTime

	if dirty {
		if err := pt.store.SaveFrame(frame); err != nil {
			return evicted{}, false, ErrBackingStore("evict", fmt.Errorf("save frame %d of page %d: %w", frame, victim, err))
		}
	}

	v.status = StatusSwapped
	v.reset()

	pt.stats.RecordEviction(dirty, resident)
	pt.logger.Debug("evict page", "page", victim, "frame", frame, "dirty", dirty, "tick", t)

	return evicted{page: victim, frame: frame}, dirty, nil
}

// Referenced reports the Clock reference bit of page
func (pt *PageTable) Referenced(page int) bool {
	return pt.entries[page].referenced
}

// ClearReferenced clears the Clock reference bit of page
func (pt *PageTable) ClearReferenced(page int) {
	pt.entries[page].referenced = false
}

// Entry returns a snapshot of one page table entry
func (pt *PageTable) Entry(page int) (Entry, error) {
	if page < 0 || page >= len(pt.entries) {
		return Entry{}, ErrInvalidPage("Entry", page, len(pt.entries))
	}
	return pt.snapshot(page), nil
}

// Entries returns a snapshot of every page table entry, in page order
func (pt *PageTable) Entries() []Entry {
	entries := make([]Entry, len(pt.entries))
	for i := range pt.entries {
		entries[i] = pt.snapshot(i)
	}
	return entries
}

// QueuePages returns the pages in the eviction queue, starting at the hand
func (pt *PageTable) QueuePages() []int {
	return pt.queue.Pages()
}

// ResidentPages returns the resident pages in page order
func (pt *PageTable) ResidentPages() []int {
	pages := make([]int, 0, pt.queue.Len())
	for i := range pt.entries {
		if pt.entries[i].status == StatusResident {
			pages = append(pages, i)
		}
	}
	return pages
}

func (pt *PageTable) snapshot(page int) Entry {
	p := pt.entries[page]
	return Entry{
		Page:       page,
		Status:     p.status,
		Modified:   p.modified,
		Frame:      p.frame,
		AccessTime: p.accessTime,
		LoadTime:   p.loadTime,
		Peeks:      p.peeks,
		Pokes:      p.pokes,
		Referenced: p.referenced,
	}
}

// WriteStatus prints the page table as a fixed-width table
func (pt *PageTable) WriteStatus(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%4s %6s %4s %6s %7s %7s %7s %7s\n",
		"Page", "Status", "Mod?", "Frame", "Acc(t)", "Load(t)", "#Peeks", "#Pokes")
	if err != nil {
		return err
	}

	for i := range pt.entries {
		p := &pt.entries[i]

		modified := "no"
		if p.modified {
			modified = "yes"
		}

		_, err := fmt.Fprintf(w, "[%02d] %6s %4s %6s %7s %7s %7d %7d\n",
			i, p.status, modified,
			optional(int64(p.frame), p.frame == NoFrame),
			optional(int64(p.accessTime), p.accessTime == NoTick),
			optional(int64(p.loadTime), p.loadTime == NoTick),
			p.peeks, p.pokes)
		if err != nil {
			return err
		}
	}

	return nil
}

func optional(v int64, absent bool) string {
	if absent {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}
