package sbrk

// Memory is a Grower backed by a Go byte slice.
type Memory struct {
	data  []byte
	limit int
}

// NewMemory creates a Memory grower that refuses to extend past limit bytes.
// If limit <= 0, DefaultLimit is used.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Memory{limit: limit}
}

// Grow extends the arena by n zeroed bytes.
func (m *Memory) Grow(n int) (int, error) {
	old := len(m.data)
	if err := checkIncrement(old, n, m.limit); err != nil {
		return 0, err
	}
	m.data = append(m.data, make([]byte, n)...)
	return old, nil
}

// Bytes returns the committed arena.
func (m *Memory) Bytes() []byte {
	return m.data
}

// Limit returns the maximum arena size.
func (m *Memory) Limit() int {
	return m.limit
}

// Reset rewinds the break to zero but keeps the backing array for reuse.
// Bytes handed out before Reset must not be used afterwards.
func (m *Memory) Reset() {
	clear(m.data)
	m.data = m.data[:0]
}
