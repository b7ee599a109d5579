package sbrk

import "fmt"

// Limited wraps a Grower and fails once a byte budget has been spent,
// regardless of how much space the underlying grower has left.
type Limited struct {
	g         Grower
	remaining int
}

// NewLimited returns a Grower that lets at most budget bytes through to g.
func NewLimited(g Grower, budget int) *Limited {
	return &Limited{g: g, remaining: max(budget, 0)}
}

// Grow forwards to the wrapped grower while budget remains.
func (l *Limited) Grow(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("grow %d: %w", n, ErrNegative)
	}
	if n > l.remaining {
		return 0, fmt.Errorf("grow %d with %d bytes of budget left: %w", n, l.remaining, ErrExhausted)
	}
	off, err := l.g.Grow(n)
	if err != nil {
		return 0, err
	}
	l.remaining -= n
	return off, nil
}

// Bytes returns the wrapped grower's arena.
func (l *Limited) Bytes() []byte {
	return l.g.Bytes()
}

// Remaining returns the unspent budget.
func (l *Limited) Remaining() int {
	return l.remaining
}
