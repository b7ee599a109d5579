package sbrk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGrowReturnsOldBreak(t *testing.T) {
	m := NewMemory(64)

	off, err := m.Grow(16)
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	off, err = m.Grow(32)
	require.NoError(t, err)
	assert.Equal(t, 16, off)
	assert.Equal(t, 48, Brk(m))
	assert.Len(t, m.Bytes(), 48)
}

func TestMemoryGrowZeroes(t *testing.T) {
	m := NewMemory(0)
	_, err := m.Grow(128)
	require.NoError(t, err)
	for i, b := range m.Bytes() {
		require.Zero(t, b, "byte %d not zeroed", i)
	}
}

func TestMemoryExhaustion(t *testing.T) {
	m := NewMemory(32)
	_, err := m.Grow(24)
	require.NoError(t, err)

	_, err = m.Grow(16)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 24, Brk(m), "failed grow must not move the break")

	off, err := m.Grow(8)
	require.NoError(t, err, "exactly filling the limit is allowed")
	assert.Equal(t, 24, off)
}

func TestMemoryNegativeIncrement(t *testing.T) {
	m := NewMemory(32)
	_, err := m.Grow(-8)
	require.ErrorIs(t, err, ErrNegative)
}

func TestMemoryDefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NewMemory(0).Limit())
	assert.Equal(t, DefaultLimit, NewMemory(-1).Limit())
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory(64)
	_, err := m.Grow(32)
	require.NoError(t, err)
	m.Bytes()[0] = 0xAA

	m.Reset()
	assert.Equal(t, 0, Brk(m))

	off, err := m.Grow(8)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Zero(t, m.Bytes()[0], "reset must not leak old contents")
}

func TestLimitedBudget(t *testing.T) {
	l := NewLimited(NewMemory(1024), 40)

	off, err := l.Grow(16)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, 24, l.Remaining())

	_, err = l.Grow(32)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 24, l.Remaining())
	assert.Len(t, l.Bytes(), 16)

	_, err = l.Grow(-1)
	require.ErrorIs(t, err, ErrNegative)
}

func TestLimitedPropagatesInnerFailure(t *testing.T) {
	l := NewLimited(NewMemory(16), 1024)
	_, err := l.Grow(32)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1024, l.Remaining(), "budget is only spent on success")
}
