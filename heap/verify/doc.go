// Package verify checks the structural invariants of a heap arena image.
//
// # Overview
//
// The allocator's own Check is a cheap probe. This package walks the whole
// block chain and reports the first invariant that does not hold:
//
//   - Scaffold: padding word, prologue header/footer (size 8, allocated)
//   - Block size: a multiple of 8 and at least MinBlockSize
//   - Coalescing: no two physically adjacent blocks are both free
//   - Boundary tags: the header and footer of every free block are identical
//   - Partition: the chain covers the arena with no gap or overlap and ends
//     in the epilogue on the last word
//   - Sentinels: prologue and epilogue are allocated
//
// # Quick Start
//
//	if err := verify.AllInvariants(a.Arena()); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// # ValidationError
//
// All validation functions return *ValidationError on failure:
//
//	var verr *verify.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s at 0x%X: %s\n", verr.Type, verr.Offset, verr.Message)
//	}
//
// Type names the failed check ("Scaffold", "BlockSize", "Coalescing",
// "BoundaryTag", "Partition", "Sentinel"). Offset is the arena offset of the
// offending tag word, or -1 when no single word is to blame.
//
// # Usage in Tests
//
//	for _, op := range ops {
//	    apply(a, op)
//	    require.NoError(t, verify.AllInvariants(a.Arena()))
//	}
//
// The walk is O(n) in the number of blocks.
package verify
