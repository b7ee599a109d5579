package trace

import "errors"

var (
	// ErrSyntax indicates a line that is not a valid header value or operation.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrIntegrity indicates a well-formed trace whose operations are
	// inconsistent: an id out of range, a free of an id that is not live, or
	// an operation count that does not match the header.
	ErrIntegrity = errors.New("trace: integrity violation")

	// ErrPayloadCorrupted indicates a payload lost its fill pattern during replay.
	ErrPayloadCorrupted = errors.New("trace: payload corrupted")

	// ErrMisaligned indicates the allocator returned an unaligned pointer.
	ErrMisaligned = errors.New("trace: misaligned payload")

	// ErrShortPayload indicates the allocator returned fewer usable bytes than requested.
	ErrShortPayload = errors.New("trace: payload shorter than requested")
)
