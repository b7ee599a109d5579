// Package alloc implements a boundary-tag heap allocator over a single
// growable byte arena.
//
// # Overview
//
// The arena is carved into back-to-back blocks. Each block starts with a
// one-word header and ends with a one-word footer, both holding the block
// size and an allocated bit. The blocks form an implicit list: the next block
// is found by adding the header's size, the previous one by reading the
// footer just before the header. There is no separate free list.
//
//	[pad][prologue hdr][prologue ftr][hdr|payload...|ftr][hdr|payload...|ftr]...[epilogue hdr]
//
// The prologue (size 8, allocated) and epilogue (size 0, allocated) are
// sentinels, so every real block always has an allocated neighbour to stop
// at when walking or coalescing.
//
// # Operations
//
//   - Init(): lay down the sentinels and add one ChunkSize free block
//   - Malloc(n): first-fit search, split if the leftover can hold a block,
//     otherwise grow the arena and place into the new space
//   - Free(p): clear the allocated bit and merge with free neighbours
//   - Realloc(p, n): free, keep, shrink in place, or move and copy
//   - Check(): walk the chain and report overlapping blocks
//
// # Usage Example
//
//	a := alloc.New(sbrk.NewMemory(0), nil)
//	if err := a.Init(); err != nil {
//	    return err
//	}
//
//	p, err := a.Malloc(100)
//	if err != nil {
//	    return err
//	}
//	payload, _ := a.Bytes(p)
//	copy(payload, "hello")
//
//	p, err = a.Realloc(p, 5000) // may move, contents preserved
//	a.Free(p)
//
// # Addresses
//
// A Ptr is the offset of a payload within the arena. Offsets stay valid when
// the arena grows; byte slices returned by Bytes do not, because a Memory
// grower may reallocate its backing array.
//
// # Alignment
//
// Every payload is 8-byte aligned and every block size is a multiple of 8.
// Requests are rounded up to size+8 and to at least MinBlockSize (24).
//
// # Contract Violations
//
// Freeing or reallocating a pointer that was not returned by this allocator,
// or was already freed, is undefined behaviour. No validation is done on the
// normal path. Config.Paranoid runs the full invariant checker after every
// mutation for debugging.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Every call takes the whole arena
// for its duration; callers must synchronize access externally.
package alloc
