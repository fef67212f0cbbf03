//go:build unix

package utils

import (
	"os"

	"golang.org/x/sys/unix"
)

// ReadFile maps name read-only. release unmaps it; the returned bytes must
// not be touched afterwards.
func ReadFile(name string) (data []byte, release func(), err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := fi.Size()
	if size == 0 || !fi.Mode().IsRegular() || int64(int(size)) != size {
		// mmap can't map empty files or pipes
		data, err := os.ReadFile(name)
		return data, func() {}, err
	}

	data, err = unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() { unix.Munmap(data) }, nil
}
