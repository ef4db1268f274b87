// Package trace reads reference strings: one page access per line.
//
//	# comment
//	r 12
//	w 3
//	r7
//
// Blank lines and lines starting with '#' are skipped. The n-th access
// (counting from 0) happens at tick n.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/vm"
)

// Access is one entry of a reference string
type Access struct {
	Page int
	Mode vm.AccessMode
	Time vm.Tick
}

// Reader yields accesses from a reference string one at a time
type Reader struct {
	scanner *bufio.Scanner
	line    int
	tick    vm.Tick
}

// NewReader creates a reader over r
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next access, or io.EOF at the end of the input
func (r *Reader) Next() (Access, error) {
	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		access, err := parseLine(text)
		if err != nil {
			return Access{}, fmt.Errorf("line %d: %w", r.line, err)
		}

		access.Time = r.tick
		r.tick++
		return access, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Access{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return Access{}, io.EOF
}

// Parse reads a whole reference string
func Parse(r io.Reader) ([]Access, error) {
	reader := NewReader(r)

	var accesses []Access
	for {
		access, err := reader.Next()
		if err == io.EOF {
			return accesses, nil
		}
		if err != nil {
			return nil, err
		}
		accesses = append(accesses, access)
	}
}

func parseLine(text string) (Access, error) {
	mode := vm.AccessMode(text[0])
	switch mode {
	case 'R':
		mode = vm.ModeRead
	case 'W':
		mode = vm.ModeWrite
	}
	if !mode.Valid() {
		return Access{}, fmt.Errorf("invalid access mode %q", text[0])
	}

	rest := strings.TrimSpace(text[1:])
	if rest == "" {
		return Access{}, fmt.Errorf("missing page number")
	}

	page, err := strconv.Atoi(rest)
	if err != nil {
		return Access{}, fmt.Errorf("invalid page number %q", rest)
	}
	if page < 0 {
		return Access{}, fmt.Errorf("negative page number %d", page)
	}

	return Access{Page: page, Mode: mode}, nil
}
