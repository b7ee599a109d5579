package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the growth primitive could not supply the requested bytes.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrNotInitialized indicates an operation on an allocator before Init.
	ErrNotInitialized = errors.New("alloc: not initialized")

	// ErrAlreadyInitialized indicates a second call to Init.
	ErrAlreadyInitialized = errors.New("alloc: already initialized")

	// ErrNegativeSize indicates a negative request size.
	ErrNegativeSize = errors.New("alloc: negative size")

	// ErrSizeOverflow indicates count*size overflowed in Calloc.
	ErrSizeOverflow = errors.New("alloc: size overflow")

	// ErrBadPtr indicates a pointer that does not name an allocated block.
	// Only reported by the bounds-checked accessors.
	ErrBadPtr = errors.New("alloc: bad pointer")

	// ErrMisalignedArena indicates the growth primitive handed back a
	// scaffold that is not double-word aligned.
	ErrMisalignedArena = errors.New("alloc: misaligned arena")
)
