package trace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/sbrk"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/format"
)

// Options control a replay.
type Options struct {
	// Grower backs the arena. Nil means a fresh sbrk.Memory with Limit.
	Grower sbrk.Grower

	// Limit is the arena limit for the default grower. <= 0 means sbrk.DefaultLimit.
	Limit int

	// Alloc is passed to alloc.New. Nil means alloc.DefaultConfig.
	Alloc *alloc.Config

	// Verify runs the full invariant checker after every operation.
	Verify bool

	// Logger receives per-trace progress. Nil discards.
	Logger *slog.Logger
}

// Result summarizes one replay.
type Result struct {
	Name        string
	Weight      int
	Ops         int           // Operations executed
	PeakPayload int           // Largest total of live requested bytes
	ArenaBytes  int           // Arena size at the end of the trace
	Elapsed     time.Duration // Wall time spent in allocator calls and checks
	Stats       alloc.Stats
	Usage       alloc.Usage
}

// Utilization is PeakPayload over ArenaBytes, the malloc-lab space score.
func (r *Result) Utilization() float64 {
	if r.ArenaBytes == 0 {
		return 0
	}
	return float64(r.PeakPayload) / float64(r.ArenaBytes)
}

// OpsPerSecond is the replay throughput.
func (r *Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// Replay runs tr against a fresh allocator built from opts.
func Replay(ctx context.Context, tr *Trace, opts Options) (*Result, error) {
	g := opts.Grower
	if g == nil {
		g = sbrk.NewMemory(opts.Limit)
	}
	a := alloc.New(g, opts.Alloc)
	if err := a.Init(); err != nil {
		return nil, fmt.Errorf("%s: %w", tr.Name, err)
	}
	return ReplayOn(ctx, a, tr, opts)
}

// ReplayOn runs tr against an initialized allocator. The allocator is left
// in its final state so callers can inspect the block chain. Only the
// Verify and Logger fields of opts are used.
func ReplayOn(ctx context.Context, a *alloc.Allocator, tr *Trace, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := &replayer{
		a:     a,
		ptrs:  make([]alloc.Ptr, tr.NumIDs),
		sizes: make([]int, tr.NumIDs),
	}

	start := time.Now()
	for i, op := range tr.Ops {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%s: op %d: %w", tr.Name, i, err)
			}
		}
		if op.ID < 0 || op.ID >= tr.NumIDs {
			return nil, fmt.Errorf("%s: op %d (%s): id out of range: %w", tr.Name, i, op, ErrIntegrity)
		}
		if err := r.step(op); err != nil {
			return nil, fmt.Errorf("%s: op %d (%s): %w", tr.Name, i, op, err)
		}
		if opts.Verify {
			if err := verify.Arena(a.Arena(), a.Base()); err != nil {
				return nil, fmt.Errorf("%s: op %d (%s): %w", tr.Name, i, op, err)
			}
		}
	}
	elapsed := time.Since(start)

	res := &Result{
		Name:        tr.Name,
		Weight:      tr.Weight,
		Ops:         len(tr.Ops),
		PeakPayload: r.peak,
		ArenaBytes:  len(a.Arena()),
		Elapsed:     elapsed,
		Stats:       a.Stats(),
		Usage:       a.Usage(),
	}
	log.Info("trace replayed",
		"trace", tr.Name,
		"ops", res.Ops,
		"arena", res.ArenaBytes,
		"util", res.Utilization(),
		"elapsed", elapsed)
	return res, nil
}

// replayer maps trace ids to live pointers.
type replayer struct {
	a     *alloc.Allocator
	ptrs  []alloc.Ptr
	sizes []int
	live  int // total requested bytes currently allocated
	peak  int
}

func (r *replayer) step(op Op) error {
	id := op.ID
	switch op.Kind {
	case Alloc:
		p, err := r.a.Malloc(op.Size)
		if err != nil {
			return err
		}
		if err := r.accept(id, p, op.Size, 0); err != nil {
			return err
		}

	case Realloc:
		old, oldSize := r.ptrs[id], r.sizes[id]
		if err := r.checkPattern(id, old, oldSize); err != nil {
			return err
		}
		p, err := r.a.Realloc(old, op.Size)
		if err != nil {
			return err
		}
		if err := r.accept(id, p, op.Size, min(oldSize, op.Size)); err != nil {
			return err
		}

	case Free:
		if err := r.checkPattern(id, r.ptrs[id], r.sizes[id]); err != nil {
			return err
		}
		r.a.Free(r.ptrs[id])
		r.record(id, alloc.Nil, 0)

	default:
		return fmt.Errorf("unknown kind %q: %w", byte(op.Kind), ErrSyntax)
	}
	return nil
}

// accept validates a fresh pointer for n bytes, checks that the first kept
// bytes still carry the id's pattern, then fills the rest.
func (r *replayer) accept(id int, p alloc.Ptr, n, kept int) error {
	if n == 0 {
		r.record(id, alloc.Nil, 0)
		return nil
	}
	if !format.IsAligned(int(p)) {
		return fmt.Errorf("ptr %d: %w", p, ErrMisaligned)
	}
	payload, err := r.a.Bytes(p)
	if err != nil {
		return err
	}
	if len(payload) < n {
		return fmt.Errorf("ptr %d: %d usable bytes for %d requested: %w", p, len(payload), n, ErrShortPayload)
	}
	for i := range kept {
		if payload[i] != pattern(id, i) {
			return fmt.Errorf("ptr %d byte %d after realloc: %w", p, i, ErrPayloadCorrupted)
		}
	}
	for i := kept; i < n; i++ {
		payload[i] = pattern(id, i)
	}
	r.record(id, p, n)
	return nil
}

func (r *replayer) checkPattern(id int, p alloc.Ptr, n int) error {
	if p == alloc.Nil {
		return nil
	}
	payload, err := r.a.Bytes(p)
	if err != nil {
		return err
	}
	for i := range n {
		if payload[i] != pattern(id, i) {
			return fmt.Errorf("ptr %d byte %d: %w", p, i, ErrPayloadCorrupted)
		}
	}
	return nil
}

func (r *replayer) record(id int, p alloc.Ptr, n int) {
	r.live += n - r.sizes[id]
	r.ptrs[id] = p
	r.sizes[id] = n
	r.peak = max(r.peak, r.live)
}

// pattern is the fill byte for offset i of id's payload.
func pattern(id, i int) byte {
	return byte(id*131 + i*7 + 1)
}
