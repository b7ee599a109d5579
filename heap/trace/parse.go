package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseFile opens and parses a trace file. The trace is named after the
// file's base name.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	tr, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tr.Name = filepath.Base(path)
	return tr, nil
}

// Parse reads a trace in .rep format and validates it.
//
// Blank lines are skipped. Input may carry a UTF-8 or UTF-16 byte order mark
// (traces saved by Windows editors); it is decoded to UTF-8 first.
func Parse(r io.Reader) (*Trace, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	buf := make([]byte, 0, scannerInitialBufferSize)
	scanner.Buffer(buf, scannerMaxLineSize)

	tr := &Trace{}
	var numOps int
	header := [HeaderLines]*int{&tr.SuggestedHeap, &tr.NumIDs, &numOps, &tr.Weight}

	lineNo, fields := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if fields < HeaderLines {
			v, err := strconv.Atoi(line)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("line %d: header value %q: %w", lineNo, line, ErrSyntax)
			}
			*header[fields] = v
			fields++
			if fields == HeaderLines {
				tr.Ops = make([]Op, 0, min(numOps, 1<<20))
			}
			continue
		}

		op, err := parseOp(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tr.Ops = append(tr.Ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning trace: %w", err)
	}

	if fields < HeaderLines {
		return nil, fmt.Errorf("truncated header: %d of %d values: %w", fields, HeaderLines, ErrSyntax)
	}
	if len(tr.Ops) != numOps {
		return nil, fmt.Errorf("header says %d ops, found %d: %w", numOps, len(tr.Ops), ErrIntegrity)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

// parseOp parses "a id size", "r id size" or "f id".
func parseOp(line string) (Op, error) {
	f := strings.Fields(line)
	if len(f[0]) != 1 {
		return Op{}, fmt.Errorf("unknown operation %q: %w", f[0], ErrSyntax)
	}

	op := Op{Kind: Kind(f[0][0])}
	want := 3
	switch op.Kind {
	case Alloc, Realloc:
	case Free:
		want = 2
	default:
		return Op{}, fmt.Errorf("unknown operation %q: %w", f[0], ErrSyntax)
	}
	if len(f) != want {
		return Op{}, fmt.Errorf("%s: want %d fields, got %d: %w", op.Kind, want, len(f), ErrSyntax)
	}

	id, err := strconv.Atoi(f[1])
	if err != nil {
		return Op{}, fmt.Errorf("%s: id %q: %w", op.Kind, f[1], ErrSyntax)
	}
	op.ID = id

	if want == 3 {
		size, err := strconv.Atoi(f[2])
		if err != nil || size < 0 {
			return Op{}, fmt.Errorf("%s: size %q: %w", op.Kind, f[2], ErrSyntax)
		}
		op.Size = size
	}
	return op, nil
}
