package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes t in .rep format. The header op count is len(t.Ops).
func Write(w io.Writer, t *Trace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n%d\n%d\n", t.SuggestedHeap, t.NumIDs, len(t.Ops), t.Weight)
	for _, op := range t.Ops {
		bw.WriteString(op.String())
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}
