package trace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_Example tests the format shown in the package documentation.
func TestParse_Example(t *testing.T) {
	src := "20000\n2\n5\n1\na 0 512\na 1 128\nr 0 640\nf 1\nf 0\n"

	tr, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 20000, tr.SuggestedHeap)
	assert.Equal(t, 2, tr.NumIDs)
	assert.Equal(t, 1, tr.Weight)
	assert.Equal(t, []Op{
		{Kind: Alloc, ID: 0, Size: 512},
		{Kind: Alloc, ID: 1, Size: 128},
		{Kind: Realloc, ID: 0, Size: 640},
		{Kind: Free, ID: 1},
		{Kind: Free, ID: 0},
	}, tr.Ops)
	assert.Equal(t, 640+128, tr.PeakPayload())
}

// TestParse_Whitespace tests blank lines and surrounding spaces.
func TestParse_Whitespace(t *testing.T) {
	src := "\n  100\n1\n\n2\n1\n\n  a 0 8  \n\tf 0\n\n"
	tr, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, tr.Ops, 2)
}

// TestParse_BOM tests traces saved with a byte order mark.
func TestParse_BOM(t *testing.T) {
	src := "100\n1\n2\n1\na 0 8\nf 0\n"

	t.Run("utf8", func(t *testing.T) {
		tr, err := Parse(strings.NewReader("\uFEFF" + src))
		require.NoError(t, err)
		assert.Equal(t, 100, tr.SuggestedHeap)
	})

	t.Run("utf16le", func(t *testing.T) {
		var b bytes.Buffer
		b.Write([]byte{0xFF, 0xFE})
		for _, c := range src {
			b.Write([]byte{byte(c), 0})
		}
		tr, err := Parse(&b)
		require.NoError(t, err)
		assert.Len(t, tr.Ops, 2)
	})
}

// TestParse_SyntaxErrors tests malformed input.
func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "", "truncated header"},
		{"short_header", "100\n1\n", "truncated header"},
		{"bad_header", "100\nx\n1\n1\n", "header value"},
		{"negative_header", "100\n-1\n1\n1\n", "header value"},
		{"unknown_op", "100\n1\n1\n1\nm 0 8\n", "unknown operation"},
		{"long_op", "100\n1\n1\n1\nalloc 0 8\n", "unknown operation"},
		{"missing_size", "100\n1\n1\n1\na 0\n", "want 3 fields"},
		{"extra_free_field", "100\n1\n2\n1\na 0 8\nf 0 8\n", "want 2 fields"},
		{"bad_id", "100\n1\n1\n1\na x 8\n", "id"},
		{"negative_size", "100\n1\n1\n1\na 0 -8\n", "size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.ErrorIs(t, err, ErrSyntax)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

// TestParse_IntegrityErrors tests well-formed but inconsistent traces.
func TestParse_IntegrityErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"op_count", "100\n1\n3\n1\na 0 8\nf 0\n", "header says 3 ops, found 2"},
		{"id_range", "100\n1\n1\n1\na 1 8\n", "out of range"},
		{"double_alloc", "100\n1\n2\n1\na 0 8\na 0 8\n", "already live"},
		{"free_unallocated", "100\n2\n1\n1\nf 1\n", "not live"},
		{"double_free", "100\n1\n3\n1\na 0 8\nf 0\nf 0\n", "not live"},
		{"free_after_realloc_zero", "100\n1\n3\n1\na 0 8\nr 0 0\nf 0\n", "not live"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.ErrorIs(t, err, ErrIntegrity)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

// TestParse_ReallocOfDeadID tests that realloc may introduce an id.
func TestParse_ReallocOfDeadID(t *testing.T) {
	tr, err := Parse(strings.NewReader("100\n1\n2\n1\nr 0 8\nf 0\n"))
	require.NoError(t, err)
	assert.Len(t, tr.Ops, 2)
}

// TestParseFile tests the file wrapper and naming.
func TestParseFile(t *testing.T) {
	tr, err := ParseFile(filepath.Join("testdata", "short1.rep"))
	require.NoError(t, err)
	assert.Equal(t, "short1.rep", tr.Name)
	assert.Equal(t, 6, tr.NumIDs)
	assert.Len(t, tr.Ops, 12)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.rep"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.rep")
	require.NoError(t, os.WriteFile(bad, []byte("1\n"), 0o644))
	_, err = ParseFile(bad)
	require.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), bad)
}

// TestWrite_RoundTrip tests that Write output parses back to the same ops.
func TestWrite_RoundTrip(t *testing.T) {
	orig, err := ParseFile(filepath.Join("testdata", "realloc.rep"))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, Write(&b, orig))

	back, err := Parse(&b)
	require.NoError(t, err)
	assert.Equal(t, orig.SuggestedHeap, back.SuggestedHeap)
	assert.Equal(t, orig.NumIDs, back.NumIDs)
	assert.Equal(t, orig.Weight, back.Weight)
	assert.Equal(t, orig.Ops, back.Ops)
}

// TestOp_String tests the line form of each kind.
func TestOp_String(t *testing.T) {
	assert.Equal(t, "a 3 100", Op{Kind: Alloc, ID: 3, Size: 100}.String())
	assert.Equal(t, "r 3 0", Op{Kind: Realloc, ID: 3}.String())
	assert.Equal(t, "f 3", Op{Kind: Free, ID: 3, Size: 9}.String())
	assert.Equal(t, "free", Free.String())
	assert.Equal(t, "Kind(122)", Kind('z').String())
}
