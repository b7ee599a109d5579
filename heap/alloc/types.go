package alloc

import (
	"log/slog"

	"github.com/joshuapare/heapkit/internal/format"
)

// Ptr is the arena offset of a block payload.
type Ptr uint32

// Nil is the null Ptr. Offset 0 is the padding word and never a payload.
const Nil Ptr = 0

// MinBlockSize is the smallest block the allocator creates, tags included.
const MinBlockSize = format.MinBlockSize

// Config controls allocator behaviour. The zero value is usable.
type Config struct {
	// ChunkSize is the minimum number of bytes the arena grows by when no
	// free block fits. Rounded up to 8. Zero means format.ChunkSize (4096).
	ChunkSize int

	// Logger receives growth and exhaustion events. Nil discards them
	// unless HEAPKIT_LOG_ALLOC is set.
	Logger *slog.Logger

	// Paranoid runs the full invariant checker after every mutating call
	// and logs violations. Debug only.
	Paranoid bool
}

// DefaultConfig is used when New is given a nil config.
var DefaultConfig = Config{ChunkSize: format.ChunkSize}

// BlockInfo describes one block of the chain.
type BlockInfo struct {
	Ptr       Ptr  // payload offset
	Size      int  // total size including tags
	Allocated bool // allocation flag from the header
}

// Payload returns the number of payload bytes the block can hold.
func (b BlockInfo) Payload() int {
	return b.Size - format.TagOverhead
}
