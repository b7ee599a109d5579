/*
Package mm provides a process-wide heap in the style of the C allocator API.

# Quick Start

	if err := mm.Init(); err != nil {
	    log.Fatal(err)
	}
	p, err := mm.Malloc(100)
	if err != nil {
	    log.Fatal(err)
	}
	buf, _ := mm.Bytes(p)
	copy(buf, "hello")
	mm.Free(p)

# Reentrancy

There is exactly one heap per process and no locking. Every function must be
called from a single goroutine, or callers must serialize access
themselves. Code that needs several heaps or concurrent use should build its
own alloc.Allocator values instead.

# Addresses

Addresses are alloc.Ptr offsets into the heap's arena, not Go pointers. Use
Bytes to get a slice over a payload; the slice is invalidated by the next
Malloc, Calloc or Realloc.
*/
package mm
