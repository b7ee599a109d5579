package sbrk

import "fmt"

// DefaultLimit is the arena limit used when a constructor is given a limit <= 0 (20 MiB).
const DefaultLimit = 20 << 20

// Grower extends a contiguous arena.
type Grower interface {
	// Grow moves the break forward by exactly n bytes and returns the old
	// break. On failure the break is unchanged.
	Grow(n int) (int, error)

	// Bytes returns the committed arena [0, brk). The slice is only valid
	// until the next Grow.
	Bytes() []byte
}

// Brk returns the current break of g.
func Brk(g Grower) int {
	return len(g.Bytes())
}

// checkIncrement validates a Grow request against the remaining space.
func checkIncrement(brk, n, limit int) error {
	if n < 0 {
		return fmt.Errorf("grow %d: %w", n, ErrNegative)
	}
	if n > limit-brk {
		return fmt.Errorf("grow %d at brk %d (limit %d): %w", n, brk, limit, ErrExhausted)
	}
	return nil
}
