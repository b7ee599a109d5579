package format

// Alignment utilities for block sizes and growth requests.

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignChunk returns n aligned up to the next multiple of chunk. A chunk of
// zero or less returns n unchanged.
//
// Example:
//
//	AlignChunk(1, 4096)    = 4096
//	AlignChunk(4096, 4096) = 4096
//	AlignChunk(4097, 4096) = 8192
func AlignChunk(n, chunk int) int {
	if chunk <= 0 {
		return n
	}
	return ((n + chunk - 1) / chunk) * chunk
}

// EvenWords rounds a word count up to an even number so a region of that many
// words ends on a double-word boundary.
func EvenWords(words int) int {
	if words%2 != 0 {
		return words + 1
	}
	return words
}

// IsAligned reports whether off is a multiple of Alignment.
func IsAligned(off int) bool {
	return off&AlignmentMask == 0
}
