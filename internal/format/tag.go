package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Tag is a decoded boundary tag.
//
// Tag word layout (little-endian uint32):
//
//	Bits    Description
//	0       Allocated flag
//	1-2     Reserved, always zero
//	3-31    Block size in bytes (multiple of 8, includes both tags)
type Tag struct {
	Size      int
	Allocated bool
}

// Pack encodes a size and allocation flag into one tag word.
func Pack(size int, allocated bool) uint32 {
	v := uint32(size) &^ AlignmentMask
	if allocated {
		v |= AllocatedBit
	}
	return v
}

// Unpack decodes a raw tag word.
func Unpack(v uint32) Tag {
	return Tag{
		Size:      int(v &^ AlignmentMask),
		Allocated: v&AllocatedBit != 0,
	}
}

// SizeAt returns the size recorded in the tag word at off.
func SizeAt(b []byte, off int) int {
	return int(ReadU32(b, off) &^ AlignmentMask)
}

// AllocatedAt reports the allocation flag of the tag word at off.
func AllocatedAt(b []byte, off int) bool {
	return ReadU32(b, off)&AllocatedBit != 0
}

// PutTag writes a packed tag word at off.
func PutTag(b []byte, off, size int, allocated bool) {
	PutU32(b, off, Pack(size, allocated))
}

// ParseTag is the bounds-checked counterpart of SizeAt/AllocatedAt. It is
// meant for diagnostics walking an arena image that may be corrupt.
func ParseTag(b []byte, off int) (Tag, error) {
	if off%WordSize != 0 {
		return Tag{}, fmt.Errorf("tag at %d: %w", off, ErrMisaligned)
	}
	word, ok := buf.Slice(b, off, WordSize)
	if !ok {
		return Tag{}, fmt.Errorf("tag at %d: %w", off, ErrTruncated)
	}
	return Unpack(ReadU32(word, 0)), nil
}

// Block pointer arithmetic. A block pointer (bp) is the offset of the first
// payload byte; the header is the word before it.

// HeaderOffset returns the header offset of the block at bp.
func HeaderOffset(bp int) int {
	return bp - WordSize
}

// FooterOffset returns the footer offset of a block at bp with the given size.
func FooterOffset(bp, size int) int {
	return bp + size - DoubleSize
}

// NextBlock returns the block pointer following the block at bp.
func NextBlock(b []byte, bp int) int {
	return bp + SizeAt(b, HeaderOffset(bp))
}

// PrevBlock returns the block pointer preceding the block at bp. It reads the
// previous block's footer, which is only guaranteed to be current when that
// block is free or a sentinel.
func PrevBlock(b []byte, bp int) int {
	return bp - SizeAt(b, bp-DoubleSize)
}
