//go:build !linux && !darwin && !windows

package sbrk

// Mapped falls back to a Memory grower where no address-space reservation
// API is available.
type Mapped struct {
	*Memory
}

// NewMapped returns a Memory-backed grower with the given limit.
func NewMapped(limit int) (*Mapped, error) {
	return &Mapped{Memory: NewMemory(limit)}, nil
}

// Close drops the backing array.
func (m *Mapped) Close() error {
	m.data = nil
	return nil
}
