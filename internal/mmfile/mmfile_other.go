//go:build !unix

// Package mmfile maps saved arena images read-only.
package mmfile

import (
	"fmt"
	"os"
)

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if info.Size() > MaxImageSize {
		return nil, nil, fmt.Errorf("mmfile: %s: %d bytes: %w", path, info.Size(), ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, noop, nil
}
