package memory

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression algorithm used for swapped page images
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0
	CompressionLZ4    CompressionType = 1
	CompressionSnappy CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression converts a name (none, lz4, snappy) into a CompressionType
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unsupported compression %q (must be none, lz4, or snappy)", name)
	}
}

// Swap slot layout:
// [0-1]: Magic number (0xC0DE)
// [2]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [3]: Reserved
// [4-5]: Uncompressed size
// [6-7]: Stored size
// [8-11]: CRC32 of the uncompressed image
// [12+]: Stored image

const (
	SlotMagic               = 0xC0DE
	SlotHeaderSize          = 12
	MinCompressionThreshold = 64 // Minimum bytes saved to keep a compressed image
	MaxPageSize             = 1<<16 - 1
)

// encodedImage is a page image ready to be stored in a swap slot
type encodedImage struct {
	compression CompressionType
	size        uint16
	stored      []byte
	checksum    uint32
}

// compressImage compresses a page image, falling back to the raw image when
// compression does not save at least MinCompressionThreshold bytes
func compressImage(data []byte, compression CompressionType) (*encodedImage, error) {
	if len(data) > MaxPageSize {
		return nil, fmt.Errorf("page image of %d bytes exceeds %d", len(data), MaxPageSize)
	}

	var stored []byte

	switch compression {
	case CompressionNone:
		stored = data

	case CompressionLZ4:
		stored = make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, stored, nil)
		if err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		// n == 0 means the block is incompressible
		stored = stored[:n]

	case CompressionSnappy:
		stored = snappy.Encode(nil, data)

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compression)
	}

	if compression != CompressionNone && (len(stored) == 0 || len(data)-len(stored) < MinCompressionThreshold) {
		compression = CompressionNone
		stored = data
	}

	return &encodedImage{
		compression: compression,
		size:        uint16(len(data)),
		stored:      stored,
		checksum:    crc32.ChecksumIEEE(data),
	}, nil
}

// encodeSlot serializes a page image into a slot of slotSize bytes
func encodeSlot(data []byte, compression CompressionType, slotSize int) ([]byte, *encodedImage, error) {
	img, err := compressImage(data, compression)
	if err != nil {
		return nil, nil, err
	}

	if SlotHeaderSize+len(img.stored) > slotSize {
		return nil, nil, fmt.Errorf("encoded page too large: %d bytes (slot holds %d)", SlotHeaderSize+len(img.stored), slotSize)
	}

	buf := make([]byte, slotSize)
	binary.LittleEndian.PutUint16(buf[0:2], SlotMagic)
	buf[2] = uint8(img.compression)
	buf[3] = 0
	binary.LittleEndian.PutUint16(buf[4:6], img.size)
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(img.stored)))
	binary.LittleEndian.PutUint32(buf[8:12], img.checksum)
	copy(buf[SlotHeaderSize:], img.stored)

	return buf, img, nil
}

// decodeSlot restores the page image held in a slot.
// A slot that was never written (all zero header) decodes to a zero page.
func decodeSlot(slot []byte, pageSize int) ([]byte, error) {
	if len(slot) < SlotHeaderSize {
		return nil, fmt.Errorf("slot too short for header: %d bytes", len(slot))
	}

	magic := binary.LittleEndian.Uint16(slot[0:2])
	if magic == 0 {
		return make([]byte, pageSize), nil
	}
	if magic != SlotMagic {
		return nil, fmt.Errorf("invalid magic number: got %04x, expected %04x", magic, SlotMagic)
	}

	compression := CompressionType(slot[2])
	size := int(binary.LittleEndian.Uint16(slot[4:6]))
	storedSize := int(binary.LittleEndian.Uint16(slot[6:8]))
	checksum := binary.LittleEndian.Uint32(slot[8:12])

	if size != pageSize {
		return nil, fmt.Errorf("stored image is %d bytes, expected %d", size, pageSize)
	}
	if SlotHeaderSize+storedSize > len(slot) {
		return nil, fmt.Errorf("insufficient data for stored image: need %d bytes, have %d",
			SlotHeaderSize+storedSize, len(slot))
	}
	stored := slot[SlotHeaderSize : SlotHeaderSize+storedSize]

	var data []byte

	switch compression {
	case CompressionNone:
		data = make([]byte, size)
		copy(data, stored)

	case CompressionLZ4:
		data = make([]byte, size)
		n, err := lz4.UncompressBlock(stored, data)
		if err != nil {
			return nil, fmt.Errorf("LZ4 decompression failed: %w", err)
		}
		if n != size {
			return nil, fmt.Errorf("LZ4 decompression size mismatch: got %d, expected %d", n, size)
		}

	case CompressionSnappy:
		var err error
		data, err = snappy.Decode(nil, stored)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}
		if len(data) != size {
			return nil, fmt.Errorf("snappy decompression size mismatch: got %d, expected %d", len(data), size)
		}

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compression)
	}

	if sum := crc32.ChecksumIEEE(data); sum != checksum {
		return nil, fmt.Errorf("checksum mismatch: got %08x, expected %08x", sum, checksum)
	}

	return data, nil
}

// CompressionStats tracks what the swap file did with written images
type CompressionStats struct {
	Writes            uint64
	CompressedWrites  uint64
	BytesOriginal     uint64
	BytesStored       uint64
	LZ4Count          uint64
	SnappyCount       uint64
	UncompressedCount uint64
}

func (cs *CompressionStats) add(img *encodedImage) {
	cs.Writes++
	cs.BytesOriginal += uint64(img.size)
	cs.BytesStored += uint64(len(img.stored)) + SlotHeaderSize

	switch img.compression {
	case CompressionNone:
		cs.UncompressedCount++
	case CompressionLZ4:
		cs.CompressedWrites++
		cs.LZ4Count++
	case CompressionSnappy:
		cs.CompressedWrites++
		cs.SnappyCount++
	}
}

// Ratio returns original bytes over stored bytes
func (cs CompressionStats) Ratio() float64 {
	if cs.BytesStored == 0 {
		return 1.0
	}
	return float64(cs.BytesOriginal) / float64(cs.BytesStored)
}
