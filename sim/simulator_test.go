package sim

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sibexico/pagesim/config"
	"github.com/sibexico/pagesim/trace"
	"github.com/sibexico/pagesim/vm"
)

// Belady's reference string with writes mixed in
const referenceString = `
r 7
w 0
r 1
r 2
r 0
w 3
r 0
r 4
r 2
w 3
r 0
r 3
r 2
r 1
w 2
r 0
r 1
r 7
r 0
r 1
`

func testConfig(policy string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Policy = policy
	cfg.Pages = 8
	cfg.Frames = 3
	cfg.PageSize = 256
	return cfg
}

func runTrace(t *testing.T, cfg *config.Config, input string) *Simulator {
	t.Helper()

	s, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	accesses, err := trace.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.NoError(t, s.Run(accesses))
	return s
}

func TestReferenceString(t *testing.T) {
	tests := []struct {
		policy     string
		faults     uint64
		hits       uint64
		evictions  uint64
		writeBacks uint64
	}{
		{"fifo", 15, 5, 12, 4},
		{"lru", 12, 8, 9, 4},
		{"clock", 12, 8, 9, 4},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			s := runTrace(t, testConfig(tt.policy), referenceString)

			m := s.Metrics()
			require.Equal(t, tt.faults, m.GetPageFaults())
			require.Equal(t, tt.hits, m.GetPageHits())
			require.Equal(t, tt.evictions, m.GetEvictions())
			require.Equal(t, tt.writeBacks, m.GetWriteBacks())

			require.Equal(t, []int{0, 1, 7}, s.PageTable().ResidentPages())
			require.Equal(t, tt.writeBacks, s.Memory().Saves())
			require.Equal(t, tt.faults, s.Memory().Loads())
		})
	}
}

func TestSwapFileRoundTrip(t *testing.T) {
	for _, compression := range []string{"none", "lz4", "snappy"} {
		t.Run(compression, func(t *testing.T) {
			cfg := testConfig("lru")
			cfg.Frames = 2
			cfg.SwapFile = filepath.Join(t.TempDir(), "swap.bin")
			cfg.Compression = compression

			// Every written page is evicted and read back, so stamps are verified
			s := runTrace(t, cfg, "w 0\nw 1\nw 2\nw 3\nr 0\nr 1\nr 2\nr 3\nw 0\nr 4\nr 5\nr 0\n")

			require.Equal(t, uint64(12), s.Metrics().GetPageFaults())
			require.Equal(t, uint64(5), s.Metrics().GetWriteBacks())

			var report bytes.Buffer
			require.NoError(t, s.WriteReport(&report, false))
			require.Contains(t, report.String(), "Swap:")
		})
	}
}

func TestCorruptedSwapDetected(t *testing.T) {
	cfg := testConfig("fifo")
	cfg.Frames = 1

	s, err := New(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Access(trace.Access{Page: 0, Mode: vm.ModeWrite, Time: 0}))
	require.NoError(t, s.Access(trace.Access{Page: 1, Mode: vm.ModeRead, Time: 1}))

	// Overwrite the saved image of page 0 behind the simulator's back
	require.NoError(t, s.Memory().Store().WritePage(0, bytes.Repeat([]byte{0xFF}, cfg.PageSize)))

	err = s.Access(trace.Access{Page: 0, Mode: vm.ModeRead, Time: 2})
	require.Error(t, err)
	require.True(t, vm.IsErrorCode(err, vm.ErrCodeInconsistent))
}

func TestInvalidPageStopsRun(t *testing.T) {
	s, err := New(testConfig("clock"), nil)
	require.NoError(t, err)
	defer s.Close()

	accesses, err := trace.Parse(strings.NewReader("r 1\nr 9\nr 2\n"))
	require.NoError(t, err)

	err = s.Run(accesses)
	require.Error(t, err)
	require.True(t, vm.IsErrorCode(err, vm.ErrCodeInvalidPage))
	require.Contains(t, err.Error(), "tick 1")

	// The access after the failure never happened
	require.Equal(t, uint64(1), s.Metrics().GetAccesses())
}

func TestRunReader(t *testing.T) {
	s, err := New(testConfig("fifo"), nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RunReader(trace.NewReader(strings.NewReader(referenceString))))
	require.Equal(t, uint64(15), s.Metrics().GetPageFaults())

	s2, err := New(testConfig("fifo"), nil)
	require.NoError(t, err)
	defer s2.Close()

	err = s2.RunReader(trace.NewReader(strings.NewReader("r 1\nq 2\n")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestRecording(t *testing.T) {
	cfg := testConfig("lru")
	cfg.Record = true
	cfg.RecordPath = filepath.Join(t.TempDir(), "run")
	cfg.RecordBatch = 4

	s := runTrace(t, cfg, referenceString)
	rec := s.Recorder()
	require.NotNil(t, rec)
	require.Equal(t, 0, rec.Pending())

	db, err := sql.Open("sqlite3", rec.FileName())
	require.NoError(t, err)
	defer db.Close()

	var accesses, faults, writeBacks int
	err = db.QueryRow(`SELECT COUNT(*), SUM(fault), SUM(wrote_back) FROM accesses WHERE run_id = ?`, rec.RunID()).
		Scan(&accesses, &faults, &writeBacks)
	require.NoError(t, err)
	require.Equal(t, 20, accesses)
	require.Equal(t, 12, faults)
	require.Equal(t, 4, writeBacks)
}

func TestInvalidConfig(t *testing.T) {
	cfg := testConfig("mru")
	_, err := New(cfg, nil)
	require.Error(t, err)

	cfg = testConfig("fifo")
	cfg.Frames = 0
	_, err = New(cfg, nil)
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	s := runTrace(t, testConfig("clock"), "w 0\nr 1\nr 0\n")

	var buf bytes.Buffer
	require.NoError(t, s.WriteReport(&buf, true))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Page Status Mod?  Frame"))
	require.Contains(t, out, "[00]    mem  yes      0       2       0       1       1\n")
	require.Contains(t, out, "Policy:                clock\n")
	require.Contains(t, out, "Frames used:           2/3\n")
	require.NotContains(t, out, "Swap:")
}
