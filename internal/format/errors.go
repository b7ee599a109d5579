package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a tag.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMisaligned indicates a tag offset or size that is not a multiple of the word size.
	ErrMisaligned = errors.New("format: misaligned tag")
)
