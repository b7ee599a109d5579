// Package sbrk provides growth primitives for the heap arena.
//
// A Grower behaves like the classic sbrk(2) break: the arena is a single
// byte range [0, brk) that only ever extends forward. Grow(n) moves the break
// by exactly n bytes and returns the old break, which is the offset of the
// freshly added region. When no more address space can be committed, Grow
// fails with ErrExhausted and the break is unchanged.
//
// # Implementations
//
// Memory: a Go byte slice with a hard limit. Cheap to create, the default for
// tests and for the process-wide allocator in pkg/mm. The backing array may
// be reallocated as the break moves, so views returned by Bytes must not be
// retained across a Grow.
//
// Mapped: reserves the full limit of address space up front with an
// anonymous mapping and commits pages read-write only as the break passes
// them. The base address never moves. Falls back to Memory on platforms
// without mmap or VirtualAlloc.
//
// Limited: wraps another Grower and enforces a byte budget. Used to simulate
// exhaustion deterministically.
//
// # Thread Safety
//
// Growers are not thread-safe. The allocator that owns one serializes all
// calls.
package sbrk
