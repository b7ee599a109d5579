package trace

const (
	// HeaderLines is the number of integer lines before the first operation.
	HeaderLines = 4

	// DefaultSuggestedHeap is written by Generate; the value is informational.
	DefaultSuggestedHeap = 20000

	// DefaultWeight is the weight of a generated trace.
	DefaultWeight = 1

	// DefaultReallocPct is the resize chance Generate uses for a negative
	// GenOptions.ReallocPct.
	DefaultReallocPct = 20

	// MaxReallocPct caps GenOptions.ReallocPct so generation terminates.
	MaxReallocPct = 99

	// Scanner sizing. Operation lines are short.
	scannerInitialBufferSize = 4 << 10
	scannerMaxLineSize       = 64 << 10

	// ctxCheckInterval is how many operations Replay runs between context checks.
	ctxCheckInterval = 256
)
