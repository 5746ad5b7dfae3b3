// Package loader materializes files into read-only in-memory buffers for
// decoding.
package loader

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func noopRelease() error {
	return nil
}

// Load returns the file's full content and a release function.  Regular
// files are mapped read-only; sources that cannot be mapped (pipes, some
// filesystems) fall back to an ordinary read.
func Load(path string) ([]byte, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, noopRelease, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, noopRelease, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	size := info.Size()
	if !info.Mode().IsRegular() || size == 0 {
		return readAll(path)
	}

	content, err := unix.Mmap(
		int(file.Fd()),
		0,
		int(size),
		unix.PROT_READ,
		unix.MAP_PRIVATE)
	if err != nil {
		return readAll(path)
	}

	release := func() error {
		return unix.Munmap(content)
	}

	return content, release, nil
}

func readAll(path string) ([]byte, func() error, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, noopRelease, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return content, noopRelease, nil
}
