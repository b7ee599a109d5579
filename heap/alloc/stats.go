package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Stats holds allocator counters. They are cumulative since New.
type Stats struct {
	GrowCalls     int   // Arena extensions
	GrowBytes     int64 // Total bytes added by extensions
	AllocCalls    int   // Malloc calls with n > 0 (including those made by Calloc and Realloc)
	AllocFastPath int   // Allocations satisfied by the first-fit scan
	AllocSlowPath int   // Allocations that required an extension
	FreeCalls     int   // Free calls with a non-Nil pointer
	Splits        int   // Blocks split during placement

	// Coalescer outcomes, by (previous free, next free).
	CoalesceNone int // (no, no)
	CoalesceNext int // (no, yes)
	CoalescePrev int // (yes, no)
	CoalesceBoth int // (yes, yes)

	ReallocSame   int // Realloc to the same adjusted size
	ReallocSlack  int // Shrink left in place because the tail was too small
	ReallocShrunk int // Shrink that split and freed a tail
	ReallocMoved  int // Grow that relocated and copied
}

// Stats returns a copy of the allocator counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// Usage summarizes the current state of the block chain.
type Usage struct {
	ArenaBytes      int // Bytes obtained from the growth primitive
	Blocks          int // Blocks between the sentinels
	FreeBlocks      int
	AllocatedBlocks int
	FreeBytes       int // Total size of free blocks, tags included
	AllocatedBytes  int // Total size of allocated blocks, tags included
	LargestFree     int // Size of the largest free block
}

// Fragmentation returns 1 - LargestFree/FreeBytes: 0 when all free space is
// one block, approaching 1 as it splinters. Zero when nothing is free.
func (u Usage) Fragmentation() float64 {
	if u.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(u.LargestFree)/float64(u.FreeBytes)
}

// Usage walks the chain and tallies blocks.
func (a *Allocator) Usage() Usage {
	u := Usage{ArenaBytes: len(a.g.Bytes())}
	a.Walk(func(b BlockInfo) bool {
		u.Blocks++
		if b.Allocated {
			u.AllocatedBlocks++
			u.AllocatedBytes += b.Size
			return true
		}
		u.FreeBlocks++
		u.FreeBytes += b.Size
		u.LargestFree = max(u.LargestFree, b.Size)
		return true
	})
	return u
}

// Walk calls fn for every block between the prologue and the epilogue in
// address order until fn returns false. The arena must not be modified from
// inside fn.
func (a *Allocator) Walk(fn func(BlockInfo) bool) {
	if a.heapList == 0 {
		return
	}
	data := a.g.Bytes()
	for bp := format.NextBlock(data, a.heapList); ; bp = format.NextBlock(data, bp) {
		tag := format.Unpack(format.ReadU32(data, format.HeaderOffset(bp)))
		if tag.Size == 0 {
			return
		}
		if !fn(BlockInfo{Ptr: Ptr(bp), Size: tag.Size, Allocated: tag.Allocated}) {
			return
		}
	}
}
