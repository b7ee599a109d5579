// Package trace reads, writes, generates and replays allocation traces.
//
// A trace is a malloc-lab style ".rep" script: a four-line header followed by
// one operation per line.
//
//	20000      suggested heap size (informational)
//	2          number of distinct block ids
//	5          number of operations
//	1          weight (used when averaging a suite of traces)
//	a 0 512    allocate 512 bytes for id 0
//	a 1 128
//	r 0 640    resize id 0 to 640 bytes
//	f 1        free id 1
//	f 0
//
// Replay runs a trace against a fresh allocator. Every payload is filled
// with a pattern derived from its id and checked again before the block is
// resized or freed, so any allocator bug that lets two live blocks overlap
// or lets metadata overwrite a payload surfaces as ErrPayloadCorrupted.
//
// # Usage Example
//
//	tr, err := trace.ParseFile("traces/binary.rep")
//	if err != nil {
//	    return err
//	}
//	res, err := trace.Replay(ctx, tr, trace.Options{Verify: true})
//	if err != nil {
//	    return err
//	}
//	trace.WriteReport(os.Stdout, []*trace.Result{res})
package trace
