package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Realloc resizes the block at p to hold n bytes.
//
//   - p == Nil behaves like Malloc(n).
//   - n == 0 frees p and returns Nil.
//   - If n rounds to the block's current size, p is returned unchanged.
//   - Shrinking splits off and frees the tail, unless the tail would be no
//     bigger than MinBlockSize, in which case the block keeps its slack.
//   - Growing allocates a new block, copies the old payload and frees p.
//     On failure p is left untouched and the error wraps ErrOutOfMemory.
//
// A free block directly after p is never absorbed in place.
func (a *Allocator) Realloc(p Ptr, n int) (Ptr, error) {
	if err := a.ready(); err != nil {
		return Nil, err
	}
	if p == Nil {
		return a.Malloc(n)
	}
	switch {
	case n == 0:
		a.Free(p)
		return Nil, nil
	case n < 0:
		return Nil, fmt.Errorf("realloc %d: %w", n, ErrNegativeSize)
	case n > format.MaxArenaSize:
		return Nil, fmt.Errorf("realloc %d: %w", n, ErrOutOfMemory)
	}

	data := a.g.Bytes()
	bp := int(p)
	csize := format.SizeAt(data, format.HeaderOffset(bp))
	asize := format.AdjustedSize(n)

	switch {
	case asize == csize:
		a.stats.ReallocSame++
		return p, nil

	case asize < csize:
		if csize-asize <= format.MinBlockSize {
			a.stats.ReallocSlack++
			return p, nil
		}
		writeBlock(data, bp, asize, true)
		tail := bp + asize
		writeBlock(data, tail, csize-asize, true)
		a.stats.ReallocShrunk++
		a.Free(Ptr(tail))
		return p, nil
	}

	np, err := a.Malloc(n)
	if err != nil {
		return Nil, fmt.Errorf("realloc %d: %w", n, err)
	}

	// Growth may have moved the backing array.
	data = a.g.Bytes()
	copy(data[int(np):], data[bp:bp+min(n, csize-format.TagOverhead)])
	a.Free(p)

	a.stats.ReallocMoved++
	a.log.Debug("block relocated", "from", bp, "to", int(np), "bytes", n)
	return np, nil
}
