package memory

import "fmt"

// PageStore holds the images of pages that are not resident
type PageStore interface {
	// ReadPage returns the stored image of page. Pages never written read as zeros.
	ReadPage(page int) ([]byte, error)

	// WritePage stores the image of page
	WritePage(page int, data []byte) error

	// PageSize returns the image size in bytes
	PageSize() int

	Close() error
}

// MemStore keeps page images in a map
type MemStore struct {
	pageSize int
	pages    map[int][]byte
}

// NewMemStore creates an empty in-memory page store
func NewMemStore(pageSize int) *MemStore {
	return &MemStore{
		pageSize: pageSize,
		pages:    make(map[int][]byte),
	}
}

func (s *MemStore) ReadPage(page int) ([]byte, error) {
	if page < 0 {
		return nil, fmt.Errorf("invalid page %d", page)
	}

	data := make([]byte, s.pageSize)
	copy(data, s.pages[page])
	return data, nil
}

func (s *MemStore) WritePage(page int, data []byte) error {
	if page < 0 {
		return fmt.Errorf("invalid page %d", page)
	}
	if len(data) != s.pageSize {
		return fmt.Errorf("page data must be exactly %d bytes, got %d", s.pageSize, len(data))
	}

	image := make([]byte, s.pageSize)
	copy(image, data)
	s.pages[page] = image
	return nil
}

func (s *MemStore) PageSize() int {
	return s.pageSize
}

// Len returns the number of pages written so far
func (s *MemStore) Len() int {
	return len(s.pages)
}

func (s *MemStore) Close() error {
	s.pages = nil
	return nil
}
