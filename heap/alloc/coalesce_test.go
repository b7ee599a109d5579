package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeBlocks allocates three 16-byte blocks at 16, 40 and 64 with the rest
// of the first chunk free after them.
func threeBlocks(t *testing.T) (*Allocator, Ptr, Ptr, Ptr) {
	t.Helper()
	a := newTestAllocator(t)
	var ps [3]Ptr
	for i := range ps {
		p, err := a.Malloc(16)
		require.NoError(t, err)
		ps[i] = p
	}
	require.Equal(t, [3]Ptr{16, 40, 64}, ps)
	return a, ps[0], ps[1], ps[2]
}

// TestCoalesce_None frees a block between two allocated neighbours.
func TestCoalesce_None(t *testing.T) {
	a, _, b, _ := threeBlocks(t)
	before := a.Stats()

	a.Free(b)

	require.Equal(t, []BlockInfo{
		{Ptr: 16, Size: 24, Allocated: true},
		{Ptr: 40, Size: 24},
		{Ptr: 64, Size: 24, Allocated: true},
		{Ptr: 88, Size: 4096 - 72},
	}, blocks(a))
	// Init's first extension already counted one isolated block.
	assert.Equal(t, before.CoalesceNone+1, a.Stats().CoalesceNone)
	assertInvariants(t, a)
}

// TestCoalesce_Next frees a block whose successor is free.
func TestCoalesce_Next(t *testing.T) {
	a, first, b, _ := threeBlocks(t)

	a.Free(b)
	a.Free(first)

	require.Equal(t, []BlockInfo{
		{Ptr: 16, Size: 48},
		{Ptr: 64, Size: 24, Allocated: true},
		{Ptr: 88, Size: 4096 - 72},
	}, blocks(a))
	assert.Equal(t, 1, a.Stats().CoalesceNext)
	assertInvariants(t, a)
}

// TestCoalesce_Prev frees a block whose predecessor is free.
func TestCoalesce_Prev(t *testing.T) {
	a, first, b, _ := threeBlocks(t)
	before := a.Stats()

	a.Free(first)
	a.Free(b)

	require.Equal(t, []BlockInfo{
		{Ptr: 16, Size: 48},
		{Ptr: 64, Size: 24, Allocated: true},
		{Ptr: 88, Size: 4096 - 72},
	}, blocks(a))
	st := a.Stats()
	assert.Equal(t, before.CoalesceNone+1, st.CoalesceNone)
	assert.Equal(t, 1, st.CoalescePrev)
	assertInvariants(t, a)
}

// TestCoalesce_Both frees a block with free blocks on both sides.
func TestCoalesce_Both(t *testing.T) {
	a, first, b, c := threeBlocks(t)

	a.Free(b)
	a.Free(first)
	a.Free(c)

	require.Equal(t, []BlockInfo{{Ptr: 16, Size: 4096}}, blocks(a))
	assert.Equal(t, 1, a.Stats().CoalesceBoth)
	assertInvariants(t, a)
}

// TestCoalesce_ExtendMergesFreeTail verifies growth folds the new region
// into a free block that ends at the old epilogue.
func TestCoalesce_ExtendMergesFreeTail(t *testing.T) {
	a := newTestAllocator(t)

	var grown []int
	a.onGrow = func(n int) { grown = append(grown, n) }

	p, err := a.Malloc(4000)
	require.NoError(t, err)
	require.Equal(t, Ptr(16), p)
	require.Equal(t, 4096-4008, blocks(a)[1].Size)

	q, err := a.Malloc(200)
	require.NoError(t, err)
	require.Equal(t, []int{4096}, grown)
	assert.Equal(t, Ptr(16+4008), q, "placed at the start of the merged tail")
	assert.Equal(t, 1, a.Stats().CoalescePrev)
	assertInvariants(t, a)
}

// TestCoalesce_ExtendAfterAllocated verifies growth after an allocated
// block leaves the new region as its own block.
func TestCoalesce_ExtendAfterAllocated(t *testing.T) {
	a := newTestAllocator(t)

	_, err := a.Malloc(4088)
	require.NoError(t, err)

	q, err := a.Malloc(8)
	require.NoError(t, err)
	assert.Equal(t, Ptr(16+4096), q)
	require.Equal(t, []BlockInfo{
		{Ptr: 16, Size: 4096, Allocated: true},
		{Ptr: 16 + 4096, Size: 24, Allocated: true},
		{Ptr: 16 + 4096 + 24, Size: 4096 - 24},
	}, blocks(a))
	assertInvariants(t, a)
}
