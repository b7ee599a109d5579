//go:build windows

package sbrk

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joshuapare/heapkit/internal/format"
)

// Mapped is a Grower over a reserved virtual address range. The whole limit
// is reserved at construction and pages are committed as the break passes
// them, so the arena base never moves.
type Mapped struct {
	base      uintptr
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
	pageSize := os.Getpagesize()
	limit = format.AlignChunk(limit, pageSize)

	base, err := windows.VirtualAlloc(0, uintptr(limit), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("sbrk: reserve %d bytes: %w", limit, err)
	}
	return &Mapped{
		base:     base,
		mem:      unsafe.Slice((*byte)(unsafe.Pointer(base)), limit),
		pageSize: pageSize,
	}, nil
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
		_, err := windows.VirtualAlloc(
			m.base+uintptr(m.committed),
			uintptr(next-m.committed),
			windows.MEM_COMMIT,
			windows.PAGE_READWRITE,
		)
		if err != nil {
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
	err := windows.VirtualFree(m.base, 0, windows.MEM_RELEASE)
	m.mem = nil
	m.base = 0
	m.brk, m.committed = 0, 0
	return err
}
