package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Bytes returns the payload of the allocated block at p. The slice is
// capped at the payload size and is only valid until the next call that may
// grow the arena (Malloc, Calloc, Realloc).
func (a *Allocator) Bytes(p Ptr) ([]byte, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	data := a.g.Bytes()
	bp := int(p)
	if p == Nil || !format.IsAligned(bp) || bp <= a.heapList {
		return nil, fmt.Errorf("ptr %d: %w", bp, ErrBadPtr)
	}
	tag, err := format.ParseTag(data, format.HeaderOffset(bp))
	if err != nil {
		return nil, fmt.Errorf("ptr %d: %w: %w", bp, ErrBadPtr, err)
	}
	if !tag.Allocated || tag.Size < format.MinBlockSize {
		return nil, fmt.Errorf("ptr %d: not an allocated block: %w", bp, ErrBadPtr)
	}
	payload, ok := buf.Slice(data, bp, tag.Size-format.TagOverhead)
	if !ok {
		return nil, fmt.Errorf("ptr %d size %d: %w", bp, tag.Size, ErrBadPtr)
	}
	return payload, nil
}

// UsableSize returns how many bytes the block at p can hold, which may
// exceed the size originally requested. Zero for Nil.
func (a *Allocator) UsableSize(p Ptr) int {
	if p == Nil || a.heapList == 0 {
		return 0
	}
	return format.SizeAt(a.g.Bytes(), format.HeaderOffset(int(p))) - format.TagOverhead
}

// Arena returns the raw arena bytes, sentinels included. Only valid until
// the next call that may grow the arena.
func (a *Allocator) Arena() []byte {
	return a.g.Bytes()
}

// Base returns the offset of the scaffold within the arena.
func (a *Allocator) Base() int {
	if a.heapList == 0 {
		return 0
	}
	return a.heapList - format.ProloguePayload
}
