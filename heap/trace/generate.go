package trace

import "math/rand"

// GenOptions shape a generated trace. Zero fields take the defaults shown,
// except ReallocPct where zero means no resizes and a negative value takes
// DefaultReallocPct.
type GenOptions struct {
	Name       string
	IDs        int // Distinct block ids (100)
	MinSize    int // Smallest request (1)
	MaxSize    int // Largest request (4096)
	ReallocPct int // Chance in percent that a live id is resized instead of freed, at most MaxReallocPct
	AllocBias  int // Chance in percent of allocating while ids remain unallocated (60)
}

func (o GenOptions) withDefaults() GenOptions {
	if o.IDs <= 0 {
		o.IDs = 100
	}
	if o.MinSize <= 0 {
		o.MinSize = 1
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = max(4096, o.MinSize)
	}
	switch {
	case o.ReallocPct < 0:
		o.ReallocPct = DefaultReallocPct
	case o.ReallocPct > MaxReallocPct:
		// Every live id must eventually be freed.
		o.ReallocPct = MaxReallocPct
	}
	if o.AllocBias <= 0 {
		o.AllocBias = 60
	}
	return o
}

// Generate builds a random well-formed trace. Every id is allocated exactly
// once, resized zero or more times and freed exactly once, so a replay ends
// with an empty heap.
func Generate(rng *rand.Rand, opts GenOptions) *Trace {
	opts = opts.withDefaults()
	tr := &Trace{
		Name:          opts.Name,
		SuggestedHeap: DefaultSuggestedHeap,
		NumIDs:        opts.IDs,
		Weight:        DefaultWeight,
	}

	size := func() int {
		return opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize+1)
	}

	next := 0
	var live []int
	for next < opts.IDs || len(live) > 0 {
		if next < opts.IDs && (len(live) == 0 || rng.Intn(100) < opts.AllocBias) {
			tr.Ops = append(tr.Ops, Op{Kind: Alloc, ID: next, Size: size()})
			live = append(live, next)
			next++
			continue
		}

		i := rng.Intn(len(live))
		id := live[i]
		if rng.Intn(100) < opts.ReallocPct {
			tr.Ops = append(tr.Ops, Op{Kind: Realloc, ID: id, Size: size()})
			continue
		}
		tr.Ops = append(tr.Ops, Op{Kind: Free, ID: id})
		live[i] = live[len(live)-1]
		live = live[:len(live)-1]
	}
	return tr
}
