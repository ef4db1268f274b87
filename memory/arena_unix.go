//go:build linux || darwin || freebsd || netbsd || openbsd

package memory

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mapArena allocates size bytes of anonymous private memory for the frames
func mapArena(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("failed to map frame arena of %d bytes: %w", size, err)
	}
	return data, nil
}

// unmapArena releases memory returned by mapArena
func unmapArena(data []byte) error {
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("failed to unmap frame arena: %w", err)
	}
	return nil
}
