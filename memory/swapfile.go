package memory

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SwapFile stores page images in fixed-size slots of a file.
// Slot n starts at n*SlotSize() and holds a header plus the (possibly
// compressed) image of page n.
type SwapFile struct {
	file        *os.File
	pageSize    int
	slotSize    int
	compression CompressionType
	stats       CompressionStats
}

// NewSwapFile opens or creates a swap file
func NewSwapFile(fileName string, pageSize int, compression CompressionType) (*SwapFile, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, pageSize)
	}
	if compression > CompressionSnappy {
		return nil, fmt.Errorf("unsupported compression type: %d", compression)
	}

	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open/create file %s: %w", fileName, err)
	}

	return &SwapFile{
		file:        file,
		pageSize:    pageSize,
		slotSize:    SlotHeaderSize + pageSize,
		compression: compression,
	}, nil
}

// ReadPage reads the image of page from its slot
func (sf *SwapFile) ReadPage(page int) ([]byte, error) {
	if page < 0 {
		return nil, fmt.Errorf("invalid page %d", page)
	}

	slot := make([]byte, sf.slotSize)
	offset := int64(page) * int64(sf.slotSize)

	// Slots past the end of the file were never written and read as zeros
	_, err := sf.file.ReadAt(slot, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read page %d: %w", page, err)
	}

	data, err := decodeSlot(slot, sf.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to decode page %d: %w", page, err)
	}
	return data, nil
}

// WritePage writes the image of page to its slot
func (sf *SwapFile) WritePage(page int, data []byte) error {
	if page < 0 {
		return fmt.Errorf("invalid page %d", page)
	}
	if len(data) != sf.pageSize {
		return fmt.Errorf("page data must be exactly %d bytes, got %d", sf.pageSize, len(data))
	}

	slot, img, err := encodeSlot(data, sf.compression, sf.slotSize)
	if err != nil {
		return fmt.Errorf("failed to encode page %d: %w", page, err)
	}

	offset := int64(page) * int64(sf.slotSize)
	if _, err := sf.file.WriteAt(slot, offset); err != nil {
		return fmt.Errorf("failed to write page %d: %w", page, err)
	}

	sf.stats.add(img)
	return nil
}

// Sync commits written slots to stable storage
func (sf *SwapFile) Sync() error {
	return sf.file.Sync()
}

// PageSize returns the page image size
func (sf *SwapFile) PageSize() int {
	return sf.pageSize
}

// SlotSize returns the on-disk size of one slot
func (sf *SwapFile) SlotSize() int {
	return sf.slotSize
}

// Stats returns compression statistics for all writes so far
func (sf *SwapFile) Stats() CompressionStats {
	return sf.stats
}

// Close syncs and closes the swap file
func (sf *SwapFile) Close() error {
	if sf.file == nil {
		return nil
	}
	if err := sf.file.Sync(); err != nil {
		sf.file.Close()
		return err
	}
	err := sf.file.Close()
	sf.file = nil
	return err
}
