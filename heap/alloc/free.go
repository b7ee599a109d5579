package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Free returns the block at p to the arena and merges it with any free
// neighbour. Free(Nil) is a no-op. Freeing anything else that Malloc,
// Calloc or Realloc did not return, or freeing twice, is undefined.
func (a *Allocator) Free(p Ptr) {
	if p == Nil || a.heapList == 0 {
		return
	}
	a.stats.FreeCalls++

	data := a.g.Bytes()
	bp := int(p)
	size := format.SizeAt(data, format.HeaderOffset(bp))
	writeBlock(data, bp, size, false)
	a.coalesce(bp)
	a.afterOp("free")
}

// coalesce merges the free block at bp with free physical neighbours and
// returns the block pointer of the merged block. The sentinels guarantee
// that both neighbours exist.
func (a *Allocator) coalesce(bp int) int {
	data := a.g.Bytes()
	next := format.NextBlock(data, bp)
	prevAlloc := format.AllocatedAt(data, bp-format.DoubleSize)
	nextAlloc := format.AllocatedAt(data, format.HeaderOffset(next))
	size := format.SizeAt(data, format.HeaderOffset(bp))

	switch {
	case prevAlloc && nextAlloc:
		// Both neighbours in use; nothing to merge.
		a.stats.CoalesceNone++
		return bp

	case prevAlloc && !nextAlloc:
		// Absorb the next block.
		size += format.SizeAt(data, format.HeaderOffset(next))
		writeBlock(data, bp, size, false)
		a.stats.CoalesceNext++

	case !prevAlloc && nextAlloc:
		// Fold this block into the previous one.
		prev := format.PrevBlock(data, bp)
		size += format.SizeAt(data, format.HeaderOffset(prev))
		bp = prev
		writeBlock(data, bp, size, false)
		a.stats.CoalescePrev++

	default:
		// Previous, this and next become one block.
		prev := format.PrevBlock(data, bp)
		size += format.SizeAt(data, format.HeaderOffset(prev)) + format.SizeAt(data, format.HeaderOffset(next))
		bp = prev
		writeBlock(data, bp, size, false)
		a.stats.CoalesceBoth++
	}
	return bp
}
