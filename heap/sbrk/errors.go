package sbrk

import "errors"

var (
	// ErrExhausted indicates the break cannot be moved because the limit would be exceeded.
	ErrExhausted = errors.New("sbrk: out of address space")

	// ErrNegative indicates a negative increment. Growers never shrink.
	ErrNegative = errors.New("sbrk: negative increment")

	// ErrClosed indicates use of a Mapped grower after Close.
	ErrClosed = errors.New("sbrk: closed")
)
