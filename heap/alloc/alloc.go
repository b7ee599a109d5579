package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/heap/sbrk"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime debug flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Allocator is a first-fit boundary-tag allocator over one arena.
type Allocator struct {
	g         sbrk.Grower
	chunkSize int
	paranoid  bool
	log       *slog.Logger

	// heapList is the block pointer of the prologue. Zero until Init.
	heapList int

	stats Stats

	// Test hook: called after every successful arena extension (nil in production)
	onGrow func(int)
}

// New creates an allocator that grows through g. A nil config means
// DefaultConfig. Init must be called before any other method.
func New(g sbrk.Grower, cfg *Config) *Allocator {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = format.ChunkSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	return &Allocator{
		g:         g,
		chunkSize: format.Align8(chunk),
		paranoid:  cfg.Paranoid,
		log:       logger,
	}
}

func defaultLogger() *slog.Logger {
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init lays down the padding word, the prologue and the epilogue, then
// extends the arena by one chunk of free space. It fails only if the growth
// primitive cannot supply the scaffold; a failed first extension is logged
// and left for the first Malloc to retry.
func (a *Allocator) Init() error {
	if a.heapList != 0 {
		return ErrAlreadyInitialized
	}

	start, err := a.g.Grow(format.ScaffoldSize)
	if err != nil {
		return fmt.Errorf("init scaffold: %w: %w", ErrOutOfMemory, err)
	}
	if !format.IsAligned(start) {
		return fmt.Errorf("init scaffold at %d: %w", start, ErrMisalignedArena)
	}

	data := a.g.Bytes()
	format.PutU32(data, start, 0)                                                     // Alignment padding
	format.PutTag(data, start+format.PrologueHeaderOffset, format.PrologueSize, true) // Prologue header
	format.PutTag(data, start+format.PrologueFooterOffset, format.PrologueSize, true) // Prologue footer
	format.PutTag(data, start+format.ScaffoldSize-format.WordSize, 0, true)           // Epilogue header
	a.heapList = start + format.ProloguePayload

	if _, err := a.extend(a.chunkSize / format.WordSize); err != nil {
		a.log.Warn("initial extension failed", "bytes", a.chunkSize, "err", err)
	}
	a.afterOp("init")
	return nil
}

// Malloc returns a pointer to at least n usable bytes. It returns Nil and no
// error for n == 0, and ErrOutOfMemory when the arena cannot grow.
func (a *Allocator) Malloc(n int) (Ptr, error) {
	if err := a.ready(); err != nil {
		return Nil, err
	}
	switch {
	case n == 0:
		return Nil, nil
	case n < 0:
		return Nil, fmt.Errorf("malloc %d: %w", n, ErrNegativeSize)
	case n > format.MaxArenaSize:
		return Nil, fmt.Errorf("malloc %d: %w", n, ErrOutOfMemory)
	}

	a.stats.AllocCalls++
	bp, err := a.allocBlock(format.AdjustedSize(n))
	if err != nil {
		return Nil, fmt.Errorf("malloc %d: %w", n, err)
	}
	a.afterOp("malloc")
	return Ptr(bp), nil
}

// Calloc allocates count*size bytes and zeroes them. Negative operands
// return ErrNegativeSize and a product that overflows int ErrSizeOverflow.
func (a *Allocator) Calloc(count, size int) (Ptr, error) {
	if count < 0 || size < 0 {
		return Nil, fmt.Errorf("calloc %d*%d: %w", count, size, ErrNegativeSize)
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return Nil, fmt.Errorf("calloc %d*%d: %w", count, size, ErrSizeOverflow)
	}
	p, err := a.Malloc(total)
	if err != nil || p == Nil {
		return p, err
	}
	data := a.g.Bytes()
	clear(data[int(p) : int(p)+total])
	return p, nil
}

// allocBlock finds or makes room for a block of asize bytes and marks it allocated.
func (a *Allocator) allocBlock(asize int) (int, error) {
	if bp, ok := a.findFit(asize); ok {
		a.place(bp, asize)
		a.stats.AllocFastPath++
		return bp, nil
	}

	bp, err := a.extend(max(asize, a.chunkSize) / format.WordSize)
	if err != nil {
		return 0, err
	}
	a.place(bp, asize)
	a.stats.AllocSlowPath++
	return bp, nil
}

// extend grows the arena by words (rounded up to an even count), turns the
// new region into one free block, moves the epilogue to the new end and
// merges with a free predecessor. Returns the resulting free block.
func (a *Allocator) extend(words int) (int, error) {
	size := format.EvenWords(words) * format.WordSize
	brk := sbrk.Brk(a.g)
	if size > format.MaxArenaSize-brk {
		a.log.Warn("arena size limit reached", "bytes", size, "arena", brk)
		return 0, fmt.Errorf("extend %d bytes at %d: %w", size, brk, ErrOutOfMemory)
	}

	// The new region starts where the old epilogue's payload would have,
	// so its header overwrites the old epilogue header.
	bp, err := a.g.Grow(size)
	if err != nil {
		a.log.Warn("arena exhausted", "bytes", size, "arena", brk, "err", err)
		return 0, fmt.Errorf("extend %d bytes: %w: %w", size, ErrOutOfMemory, err)
	}

	data := a.g.Bytes()
	writeBlock(data, bp, size, false)
	format.PutTag(data, format.HeaderOffset(bp+size), 0, true)

	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(size)
	a.log.Debug("arena grown", "words", size/format.WordSize, "bytes", size, "arena", len(data))
	if a.onGrow != nil {
		a.onGrow(size)
	}

	return a.coalesce(bp), nil
}

// findFit performs a first-fit scan of the implicit list.
func (a *Allocator) findFit(asize int) (int, bool) {
	data := a.g.Bytes()
	for bp := format.NextBlock(data, a.heapList); ; bp = format.NextBlock(data, bp) {
		hdr := format.HeaderOffset(bp)
		size := format.SizeAt(data, hdr)
		if size == 0 {
			return 0, false // epilogue
		}
		if !format.AllocatedAt(data, hdr) && size >= asize {
			return bp, true
		}
	}
}

// place marks asize bytes of the free block at bp allocated, splitting off
// the remainder when it can stand as a block of its own.
func (a *Allocator) place(bp, asize int) {
	data := a.g.Bytes()
	csize := format.SizeAt(data, format.HeaderOffset(bp))

	if csize-asize >= format.MinBlockSize {
		writeBlock(data, bp, asize, true)
		writeBlock(data, bp+asize, csize-asize, false)
		a.stats.Splits++
		return
	}
	writeBlock(data, bp, csize, true)
}

// writeBlock writes matching header and footer tags for the block at bp.
func writeBlock(data []byte, bp, size int, allocated bool) {
	format.PutTag(data, format.HeaderOffset(bp), size, allocated)
	format.PutTag(data, format.FooterOffset(bp, size), size, allocated)
}

func (a *Allocator) ready() error {
	if a.heapList == 0 {
		return ErrNotInitialized
	}
	return nil
}

// afterOp runs the full invariant checker when Config.Paranoid is set.
func (a *Allocator) afterOp(op string) {
	if !a.paranoid {
		return
	}
	if err := verify.Arena(a.g.Bytes(), a.heapList-format.ProloguePayload); err != nil {
		a.log.Error("heap invariant violated", "op", op, "err", err)
	}
}
