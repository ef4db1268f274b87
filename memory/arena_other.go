//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package memory

func mapArena(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapArena([]byte) error {
	return nil
}
