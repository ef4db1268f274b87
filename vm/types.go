package vm

import (
	"fmt"
	"strings"
)

// FrameID identifies a physical memory frame
type FrameID int32

// NoFrame marks an entry without a frame mapping
const NoFrame FrameID = -1

// Tick is a point in simulated time, supplied by the caller on every access
type Tick int64

// NoTick marks an access or load time that has not happened
const NoTick Tick = -1

// Status is the residency state of a virtual page
type Status uint8

const (
	StatusUnused   Status = iota // never loaded
	StatusResident               // mapped to a frame
	StatusSwapped                // evicted to the backing store
)

func (s Status) String() string {
	switch s {
	case StatusUnused:
		return "-"
	case StatusResident:
		return "mem"
	case StatusSwapped:
		return "disk"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// AccessMode is the kind of access made to a page
type AccessMode byte

const (
	ModeRead  AccessMode = 'r'
	ModeWrite AccessMode = 'w'
)

func (m AccessMode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("mode(%q)", byte(m))
	}
}

// Valid reports whether m is a read or a write
func (m AccessMode) Valid() bool {
	return m == ModeRead || m == ModeWrite
}

// Policy selects the page replacement algorithm
type Policy int

const (
	PolicyFIFO Policy = iota
	PolicyLRU
	PolicyClock
)

func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	case PolicyClock:
		return "clock"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Valid reports whether p is one of the known policies
func (p Policy) Valid() bool {
	return p >= PolicyFIFO && p <= PolicyClock
}

// tracksAccess reports whether the policy reorders the queue on every access.
// FIFO order is fixed when the page is loaded.
func (p Policy) tracksAccess() bool {
	return p == PolicyLRU || p == PolicyClock
}

// ParsePolicy converts a policy name (fifo, lru, clock) into a Policy
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return PolicyFIFO, nil
	case "lru":
		return PolicyLRU, nil
	case "clock":
		return PolicyClock, nil
	default:
		return 0, ErrInvalidConfig("ParsePolicy",
			fmt.Sprintf("unknown replacement policy %q (must be fifo, lru, or clock)", name))
	}
}

// Entry is a read-only snapshot of one page table entry
type Entry struct {
	Page       int
	Status     Status
	Modified   bool
	Frame      FrameID
	AccessTime Tick
	LoadTime   Tick
	Peeks      uint64
	Pokes      uint64
	Referenced bool
}

// AccessEvent describes one completed page access
type AccessEvent struct {
	Time      Tick
	Page      int
	Mode      AccessMode
	Fault     bool
	Frame     FrameID
	Victim    int // -1 when no page was evicted
	WroteBack bool
}
