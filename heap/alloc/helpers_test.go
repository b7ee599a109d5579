package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/sbrk"
	"github.com/joshuapare/heapkit/heap/verify"
)

// newTestAllocator returns an initialized allocator over an in-memory arena
// with the default chunk size.
func newTestAllocator(t testing.TB) *Allocator {
	t.Helper()
	a := New(sbrk.NewMemory(0), nil)
	require.NoError(t, a.Init())
	return a
}

// newLimitedAllocator returns an initialized allocator whose grower fails
// once budget bytes have been handed out.
func newLimitedAllocator(t testing.TB, budget int) *Allocator {
	t.Helper()
	a := New(sbrk.NewLimited(sbrk.NewMemory(0), budget), nil)
	require.NoError(t, a.Init())
	return a
}

// assertInvariants runs the full checker and the cheap probe.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, verify.Arena(a.Arena(), a.Base()))
	require.True(t, a.Check(), "Check should pass when verify does")
}

// fill writes a pattern derived from seed into the payload of p.
func fill(t testing.TB, a *Allocator, p Ptr, n int, seed byte) {
	t.Helper()
	b, err := a.Bytes(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), n)
	for i := range n {
		b[i] = seed + byte(i)
	}
}

// requireFilled checks the first n bytes of p against the pattern from fill.
func requireFilled(t testing.TB, a *Allocator, p Ptr, n int, seed byte) {
	t.Helper()
	b, err := a.Bytes(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), n)
	for i := range n {
		if b[i] != seed+byte(i) {
			require.Failf(t, "pattern mismatch", "ptr %d byte %d: got 0x%02X want 0x%02X", p, i, b[i], seed+byte(i))
		}
	}
}

// blocks returns the chain as a slice for compact assertions.
func blocks(a *Allocator) []BlockInfo {
	var out []BlockInfo
	a.Walk(func(b BlockInfo) bool {
		out = append(out, b)
		return true
	})
	return out
}
