package mm

import (
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/sbrk"
)

// Ptr is re-exported so callers need not import heap/alloc.
type Ptr = alloc.Ptr

// Nil is the null address.
const Nil = alloc.Nil

var std *alloc.Allocator

// Init creates the process heap over an in-memory arena of sbrk.DefaultLimit
// bytes. Calling it twice returns alloc.ErrAlreadyInitialized.
func Init() error {
	return InitWith(sbrk.NewMemory(sbrk.DefaultLimit), nil)
}

// InitWith creates the process heap over g with cfg (nil means alloc.DefaultConfig).
func InitWith(g sbrk.Grower, cfg *alloc.Config) error {
	if std != nil {
		return alloc.ErrAlreadyInitialized
	}
	a := alloc.New(g, cfg)
	if err := a.Init(); err != nil {
		return err
	}
	std = a
	return nil
}

// Default returns the process heap, or nil before Init.
func Default() *alloc.Allocator {
	return std
}

// Malloc allocates n bytes. Malloc(0) returns Nil.
func Malloc(n int) (Ptr, error) {
	if std == nil {
		return Nil, alloc.ErrNotInitialized
	}
	return std.Malloc(n)
}

// Calloc allocates count*size zeroed bytes.
func Calloc(count, size int) (Ptr, error) {
	if std == nil {
		return Nil, alloc.ErrNotInitialized
	}
	return std.Calloc(count, size)
}

// Realloc resizes p to n bytes, moving it if needed.
func Realloc(p Ptr, n int) (Ptr, error) {
	if std == nil {
		return Nil, alloc.ErrNotInitialized
	}
	return std.Realloc(p, n)
}

// Free releases p. Free(Nil) is a no-op.
func Free(p Ptr) {
	if std == nil {
		return
	}
	std.Free(p)
}

// Bytes returns the payload of p.
func Bytes(p Ptr) ([]byte, error) {
	if std == nil {
		return nil, alloc.ErrNotInitialized
	}
	return std.Bytes(p)
}

// Check runs the heap's structural probe. False before Init.
func Check() bool {
	return std != nil && std.Check()
}
