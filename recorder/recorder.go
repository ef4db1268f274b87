// Package recorder stores every page access of a simulation in a SQLite
// database for later analysis.
package recorder

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sibexico/pagesim/vm"
)

// DefaultBatchSize is the number of accesses buffered before a flush
const DefaultBatchSize = 10000

// Recorder buffers access events and writes them to SQLite in batches.
// It implements vm.AccessObserver.
type Recorder struct {
	db        *sql.DB
	statement *sql.Stmt
	fileName  string

	runID     string
	pending   []vm.AccessEvent
	batchSize int

	// first error of an automatic flush, reported by Flush and Close
	err error
}

// New creates the database <path>.sqlite3. An empty path picks a unique
// name. An existing file is never overwritten.
func New(path string) (*Recorder, error) {
	if path == "" {
		path = "pagesim_" + xid.New().String()
	}

	fileName := path + ".sqlite3"
	if _, err := os.Stat(fileName); err == nil {
		return nil, fmt.Errorf("file %s already exists", fileName)
	}

	db, err := sql.Open("sqlite3", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	r := &Recorder{
		db:        db,
		fileName:  fileName,
		runID:     xid.New().String(),
		batchSize: DefaultBatchSize,
	}

	if err := r.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	r.statement, err = db.Prepare(`INSERT INTO accesses
		(run_id, tick, page, mode, fault, frame, victim, wrote_back)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

func (r *Recorder) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs
		(
			run_id VARCHAR(20) NOT NULL PRIMARY KEY,
			policy VARCHAR(10) NOT NULL,
			pages  INTEGER     NOT NULL,
			frames INTEGER     NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accesses
		(
			run_id     VARCHAR(20) NOT NULL,
			tick       INTEGER     NOT NULL,
			page       INTEGER     NOT NULL,
			mode       CHAR(1)     NOT NULL,
			fault      BOOLEAN     NOT NULL,
			frame      INTEGER     NOT NULL,
			victim     INTEGER     NOT NULL,
			wrote_back BOOLEAN     NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS accesses_run_tick_index
			ON accesses (run_id, tick)`,
		`CREATE INDEX IF NOT EXISTS accesses_page_index
			ON accesses (page)`,
	}

	for _, s := range statements {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SetBatchSize sets how many accesses are buffered before a flush
func (r *Recorder) SetBatchSize(n int) {
	if n <= 0 {
		n = DefaultBatchSize
	}
	r.batchSize = n
}

// FileName returns the database file name
func (r *Recorder) FileName() string {
	return r.fileName
}

// RunID returns the ID stamped on recorded accesses
func (r *Recorder) RunID() string {
	return r.runID
}

// StartRun flushes the previous run and begins a new one
func (r *Recorder) StartRun(policy vm.Policy, pages, frames int) error {
	if err := r.Flush(); err != nil {
		return err
	}

	r.runID = xid.New().String()
	_, err := r.db.Exec(`INSERT INTO runs (run_id, policy, pages, frames) VALUES (?, ?, ?, ?)`,
		r.runID, policy.String(), pages, frames)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ObserveAccess buffers one access, flushing when the batch is full
func (r *Recorder) ObserveAccess(event vm.AccessEvent) {
	r.pending = append(r.pending, event)
	if len(r.pending) >= r.batchSize {
		if err := r.Flush(); err != nil && r.err == nil {
			r.err = err
		}
	}
}

// Pending returns the number of buffered accesses
func (r *Recorder) Pending() int {
	return len(r.pending)
}

// Flush writes all buffered accesses in one transaction
func (r *Recorder) Flush() error {
	if r.err != nil {
		return r.err
	}
	if r.db == nil || len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt := tx.Stmt(r.statement)
	for _, e := range r.pending {
		_, err := stmt.Exec(r.runID, int64(e.Time), e.Page, string(rune(e.Mode)),
			e.Fault, int(e.Frame), e.Victim, e.WroteBack)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert access at tick %d: %w", e.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.pending = r.pending[:0]
	return nil
}

// Close flushes buffered accesses and closes the database
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}

	err := r.Flush()
	r.statement.Close()
	if cerr := r.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	r.db = nil
	return err
}
