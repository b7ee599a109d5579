package trace

import (
	"fmt"
	"strconv"
)

// Kind is the operation letter of a trace line.
type Kind byte

const (
	Alloc   Kind = 'a'
	Realloc Kind = 'r'
	Free    Kind = 'f'
)

func (k Kind) String() string {
	switch k {
	case Alloc:
		return "alloc"
	case Realloc:
		return "realloc"
	case Free:
		return "free"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is one trace operation. Size is ignored for Free.
type Op struct {
	Kind Kind
	ID   int
	Size int
}

func (o Op) String() string {
	if o.Kind == Free {
		return fmt.Sprintf("%c %d", o.Kind, o.ID)
	}
	return fmt.Sprintf("%c %d %d", o.Kind, o.ID, o.Size)
}

// Trace is a parsed allocation script.
type Trace struct {
	Name          string // file name or generator label; not serialized
	SuggestedHeap int
	NumIDs        int
	Weight        int
	Ops           []Op
}

// Validate checks that every id is in range, that no id is allocated twice
// without an intervening free, and that every free names a live id.
// Realloc of an id that is not live behaves like an allocation.
func (t *Trace) Validate() error {
	if t.NumIDs < 0 {
		return fmt.Errorf("%d ids: %w", t.NumIDs, ErrIntegrity)
	}
	live := make([]bool, t.NumIDs)
	for i, op := range t.Ops {
		if op.ID < 0 || op.ID >= t.NumIDs {
			return fmt.Errorf("op %d (%s): id out of range [0,%d): %w", i, op, t.NumIDs, ErrIntegrity)
		}
		if op.Size < 0 {
			return fmt.Errorf("op %d (%s): negative size: %w", i, op, ErrIntegrity)
		}
		switch op.Kind {
		case Alloc:
			if live[op.ID] {
				return fmt.Errorf("op %d (%s): id already live: %w", i, op, ErrIntegrity)
			}
			live[op.ID] = true
		case Realloc:
			live[op.ID] = op.Size > 0
		case Free:
			if !live[op.ID] {
				return fmt.Errorf("op %d (%s): id not live: %w", i, op, ErrIntegrity)
			}
			live[op.ID] = false
		default:
			return fmt.Errorf("op %d: unknown kind %q: %w", i, byte(op.Kind), ErrIntegrity)
		}
	}
	return nil
}

// PeakPayload returns the largest total of live requested bytes at any
// point in the trace.
func (t *Trace) PeakPayload() int {
	sizes := make([]int, t.NumIDs)
	total, peak := 0, 0
	for _, op := range t.Ops {
		if op.ID < 0 || op.ID >= t.NumIDs {
			continue
		}
		switch op.Kind {
		case Alloc, Realloc:
			total += op.Size - sizes[op.ID]
			sizes[op.ID] = op.Size
		case Free:
			total -= sizes[op.ID]
			sizes[op.ID] = 0
		}
		peak = max(peak, total)
	}
	return peak
}
