//go:build linux || darwin

package sbrk

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/format"
)

// Mapped is a Grower over an anonymous mapping. The whole limit is reserved
// PROT_NONE at construction and pages are made read-write as the break
// passes them, so the arena base never moves.
type Mapped struct {
	mem       []byte // full reservation
	brk       int
	committed int
	pageSize  int
}

// NewMapped reserves limit bytes of address space (rounded up to a page).
// If limit <= 0, DefaultLimit is used.
func NewMapped(limit int) (*Mapped, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	pageSize := unix.Getpagesize()
	limit = format.AlignChunk(limit, pageSize)

	mem, err := unix.Mmap(-1, 0, limit, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("sbrk: reserve %d bytes: %w", limit, err)
	}
	return &Mapped{mem: mem, pageSize: pageSize}, nil
}

// Grow moves the break, committing whole pages as needed.
func (m *Mapped) Grow(n int) (int, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	old := m.brk
	if err := checkIncrement(old, n, len(m.mem)); err != nil {
		return 0, err
	}
	end := old + n
	if end > m.committed {
		next := min(format.AlignChunk(end, m.pageSize), len(m.mem))
		if err := unix.Mprotect(m.mem[m.committed:next], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("sbrk: commit [%d,%d): %w", m.committed, next, err)
		}
		m.committed = next
	}
	m.brk = end
	return old, nil
}

// Bytes returns the committed arena [0, brk).
func (m *Mapped) Bytes() []byte {
	if m.mem == nil {
		return nil
	}
	return m.mem[:m.brk:m.brk]
}

// Limit returns the size of the reservation.
func (m *Mapped) Limit() int {
	return len(m.mem)
}

// Close releases the reservation. Calling Close twice is a no-op.
func (m *Mapped) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	m.brk, m.committed = 0, 0
	if errors.Is(err, unix.EINVAL) {
		return nil
	}
	return err
}
