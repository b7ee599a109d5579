// Package format houses the low-level boundary-tag encoding used by the heap
// arena. Every block in the arena is delimited by a one-word header and a
// one-word footer; this package knows how those words are laid out and how
// big the fixed scaffolding around the block chain is, and nothing else.
package format

const (
	// WordSize is the width of a header or footer word in bytes.
	WordSize = 4

	// DoubleSize is the size of a double word. Payloads are aligned to it.
	DoubleSize = 8

	// Alignment is the payload alignment guaranteed to callers.
	Alignment = DoubleSize

	// AlignmentMask is Alignment-1. Also masks the flag bits out of a tag.
	AlignmentMask = Alignment - 1

	// TagOverhead is the per-block cost of the header and footer words.
	TagOverhead = 2 * WordSize

	// MinBlockSize is the smallest block the allocator will ever create:
	// header, footer and two double words of payload, rounded to Alignment.
	MinBlockSize = 24

	// ChunkSize is the default number of bytes the arena grows by when no
	// free block fits a request.
	ChunkSize = 1 << 12

	// MaxArenaSize caps the arena at 2 GiB so every offset and size fits in
	// an int32 as well as in a tag word.
	MaxArenaSize = 1<<31 - DoubleSize
)

// Arena scaffold written by Init. Offsets are from the start of the arena.
//
//	Offset  Size  Field
//	0x00    4     Alignment padding (zero)
//	0x04    4     Prologue header   (DoubleSize | allocated)
//	0x08    4     Prologue footer   (DoubleSize | allocated)
//	0x0C    4     Epilogue header   (0 | allocated)
//	0x10    ...   First block payload once the arena has grown
const (
	// ScaffoldWords is the number of words requested from the growth
	// primitive at bootstrap.
	ScaffoldWords = 4

	// ScaffoldSize is ScaffoldWords in bytes.
	ScaffoldSize = ScaffoldWords * WordSize

	// PrologueHeaderOffset is the offset of the prologue header word.
	PrologueHeaderOffset = WordSize

	// PrologueFooterOffset is the offset of the prologue footer word.
	PrologueFooterOffset = 2 * WordSize

	// ProloguePayload is the block pointer of the prologue.
	ProloguePayload = 2 * WordSize

	// PrologueSize is the recorded size of the prologue block.
	PrologueSize = DoubleSize

	// FirstBlockPayload is the block pointer of the first real block.
	FirstBlockPayload = ScaffoldSize
)

// AllocatedBit is the low bit of a tag word.
const AllocatedBit = 0x1

// AdjustedSize returns the total block size needed to satisfy a payload of
// n bytes: n plus tag overhead, rounded to Alignment, never below
// MinBlockSize.
func AdjustedSize(n int) int {
	return max(Align8(n+TagOverhead), MinBlockSize)
}
