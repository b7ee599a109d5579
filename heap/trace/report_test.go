package trace

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// TestWriteReport_Rows checks grouping, utilization and the summary row.
func TestWriteReport_Rows(t *testing.T) {
	results := []*Result{
		{
			Name: "big.rep", Weight: 1, Ops: 12000,
			PeakPayload: 96048, ArenaBytes: 118800,
			Elapsed: time.Second,
			Stats:   alloc.Stats{GrowCalls: 27, ReallocMoved: 311},
		},
		{
			Name: "a-very-long-trace-name.rep", Weight: 1, Ops: 8000,
			PeakPayload: 50, ArenaBytes: 100,
			Elapsed: time.Second,
		},
	}

	var b bytes.Buffer
	require.NoError(t, WriteReport(&b, results))
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "trace"))
	assert.Contains(t, lines[1], "12,000")
	assert.Contains(t, lines[1], "96,048")
	assert.Contains(t, lines[1], "118,800")
	assert.Contains(t, lines[1], "80.8%")
	assert.Contains(t, lines[1], "311")
	assert.Contains(t, lines[2], "a-very-long-trace-n~")
	assert.Contains(t, lines[2], "50.0%")
	assert.Equal(t, "----", lines[3])
	assert.Contains(t, lines[4], "total (2)")
	assert.Contains(t, lines[4], "20,000")
	assert.Contains(t, lines[4], "65.4%")
}

// TestWriteReport_Single omits the summary.
func TestWriteReport_Single(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteReport(&b, []*Result{{Name: "x", Ops: 1, ArenaBytes: 8}}))
	assert.NotContains(t, b.String(), "total")
}
