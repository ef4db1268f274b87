// Package sim runs reference strings through a page table wired to
// physical memory, a swap store, statistics and an optional recorder.
package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sibexico/pagesim/config"
	"github.com/sibexico/pagesim/memory"
	"github.com/sibexico/pagesim/recorder"
	"github.com/sibexico/pagesim/stats"
	"github.com/sibexico/pagesim/trace"
	"github.com/sibexico/pagesim/vm"
)

// stampSize is the size of the (page, tick) stamp written into modified pages
const stampSize = 16

// Simulator drives one simulation run
type Simulator struct {
	config   *config.Config
	table    *vm.PageTable
	memory   *memory.Memory
	swap     *memory.SwapFile // nil when pages swap to memory
	metrics  *stats.Metrics
	recorder *recorder.Recorder // nil when not recording
	logger   *slog.Logger

	// tick of the last write to each page, checked when the page is read back
	lastWrite map[int]vm.Tick
}

// New builds a simulator from cfg
func New(cfg *config.Config, logger *slog.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	policy, err := vm.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	compression, err := memory.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		config:    cfg.Clone(),
		metrics:   stats.NewMetrics(),
		logger:    logger,
		lastWrite: make(map[int]vm.Tick),
	}

	var store memory.PageStore
	if cfg.SwapFile != "" {
		s.swap, err = memory.NewSwapFile(cfg.SwapFile, cfg.PageSize, compression)
		if err != nil {
			return nil, err
		}
		store = s.swap
	} else {
		store = memory.NewMemStore(cfg.PageSize)
	}

	s.memory, err = memory.New(cfg.Frames, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	s.table, err = vm.NewPageTable(policy, cfg.Pages, s.memory, s.memory, s.metrics)
	if err != nil {
		s.memory.Close()
		return nil, err
	}
	s.table.SetLogger(logger)

	if cfg.Record {
		s.recorder, err = recorder.New(cfg.RecordPath)
		if err != nil {
			s.memory.Close()
			return nil, err
		}
		s.recorder.SetBatchSize(cfg.RecordBatch)

		if err := s.recorder.StartRun(policy, cfg.Pages, cfg.Frames); err != nil {
			s.Close()
			return nil, err
		}
		s.table.SetObserver(s.recorder)

		logger.Info("recording accesses", "file", s.recorder.FileName(), "run", s.recorder.RunID())
	}

	logger.Debug("simulator ready",
		"policy", policy, "pages", cfg.Pages, "frames", cfg.Frames,
		"page_size", cfg.PageSize, "swap", cfg.SwapFile, "compression", compression)

	return s, nil
}

// Access performs one access. A write stamps the page with its number and
// the tick so that write-back and reload carry real data.
func (s *Simulator) Access(a trace.Access) error {
	frame, err := s.table.RequestPage(a.Page, a.Mode, a.Time)
	if err != nil {
		return err
	}

	if want, ok := s.lastWrite[a.Page]; ok {
		if err := s.verifyStamp(frame, a.Page, want); err != nil {
			return err
		}
	}

	if a.Mode == vm.ModeWrite {
		stamp := make([]byte, stampSize)
		binary.LittleEndian.PutUint64(stamp[0:8], uint64(a.Page))
		binary.LittleEndian.PutUint64(stamp[8:16], uint64(a.Time))
		if err := s.memory.Write(frame, 0, stamp); err != nil {
			return err
		}
		s.lastWrite[a.Page] = a.Time
	}

	return nil
}

func (s *Simulator) verifyStamp(frame vm.FrameID, page int, want vm.Tick) error {
	data, err := s.memory.Read(frame)
	if err != nil {
		return err
	}

	gotPage := int(binary.LittleEndian.Uint64(data[0:8]))
	gotTick := vm.Tick(binary.LittleEndian.Uint64(data[8:16]))
	if gotPage != page || gotTick != want {
		return vm.ErrInconsistent("Access", fmt.Sprintf(
			"frame %d holds stamp (page %d, tick %d), expected (page %d, tick %d)",
			frame, gotPage, gotTick, page, want))
	}
	return nil
}

// Run performs every access in order and stops at the first error
func (s *Simulator) Run(accesses []trace.Access) error {
	for _, a := range accesses {
		if err := s.Access(a); err != nil {
			return fmt.Errorf("tick %d: %w", a.Time, err)
		}
	}
	return s.finish()
}

// RunReader streams accesses from r
func (s *Simulator) RunReader(r *trace.Reader) error {
	for {
		a, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := s.Access(a); err != nil {
			return fmt.Errorf("tick %d: %w", a.Time, err)
		}
	}
	return s.finish()
}

func (s *Simulator) finish() error {
	if s.recorder != nil {
		if err := s.recorder.Flush(); err != nil {
			return err
		}
	}
	s.metrics.LogMetrics(s.logger)
	return nil
}

// PageTable returns the simulated page table
func (s *Simulator) PageTable() *vm.PageTable {
	return s.table
}

// Metrics returns the run's counters
func (s *Simulator) Metrics() *stats.Metrics {
	return s.metrics
}

// Memory returns the physical memory model
func (s *Simulator) Memory() *memory.Memory {
	return s.memory
}

// Recorder returns the access recorder, nil when not recording
func (s *Simulator) Recorder() *recorder.Recorder {
	return s.recorder
}

// WriteReport prints the summary, swap compression figures and, when
// showStatus is set, the page table
func (s *Simulator) WriteReport(w io.Writer, showStatus bool) error {
	if showStatus {
		if err := s.table.WriteStatus(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%-22s %s\n", "Policy:", s.table.Policy()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-22s %d/%d\n", "Frames used:", s.memory.FramesInUse(), s.memory.FrameCount()); err != nil {
		return err
	}
	if err := s.metrics.WriteSummary(w); err != nil {
		return err
	}

	if s.swap != nil {
		cs := s.swap.Stats()
		_, err := fmt.Fprintf(w, "%-22s %d written, %d compressed, ratio %.2f\n",
			"Swap:", cs.Writes, cs.CompressedWrites, cs.Ratio())
		if err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the recorder and releases memory and the swap store
func (s *Simulator) Close() error {
	var errs []error
	if s.recorder != nil {
		errs = append(errs, s.recorder.Close())
	}
	errs = append(errs, s.memory.Close())
	return errors.Join(errs...)
}
