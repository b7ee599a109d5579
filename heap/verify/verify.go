package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/mmfile"
)

// Error types for different validation failures.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates an arena whose scaffold starts at offset 0.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	return Arena(data, 0)
}

// Arena validates an arena whose scaffold starts at base.
func Arena(data []byte, base int) error {
	if err := Scaffold(data, base); err != nil {
		return err
	}
	return Chain(data, base)
}

// Scaffold validates the padding word and the prologue.
func Scaffold(data []byte, base int) error {
	if !buf.Has(data, base, format.ScaffoldSize) {
		return &ValidationError{
			Type:    "Scaffold",
			Message: fmt.Sprintf("arena too small: %d bytes from base %d (need %d)", len(data)-base, base, format.ScaffoldSize),
			Offset:  -1,
		}
	}
	if !format.IsAligned(base) {
		return &ValidationError{
			Type:    "Scaffold",
			Message: fmt.Sprintf("base %d not %d-aligned", base, format.Alignment),
			Offset:  base,
		}
	}

	hdrOff := base + format.PrologueHeaderOffset
	ftrOff := base + format.PrologueFooterOffset
	hdr := format.ReadU32(data, hdrOff)
	ftr := format.ReadU32(data, ftrOff)
	want := format.Pack(format.PrologueSize, true)
	if hdr != want {
		return &ValidationError{
			Type:    "Sentinel",
			Message: fmt.Sprintf("prologue header 0x%08X, expected 0x%08X", hdr, want),
			Offset:  hdrOff,
		}
	}
	if ftr != want {
		return &ValidationError{
			Type:    "Sentinel",
			Message: fmt.Sprintf("prologue footer 0x%08X, expected 0x%08X", ftr, want),
			Offset:  ftrOff,
		}
	}
	return nil
}

// Chain walks every block from the first one after the prologue to the
// epilogue, checking sizes, coalescing, free-block tags and the partition.
func Chain(data []byte, base int) error {
	bp := base + format.FirstBlockPayload
	prevFree := false
	blocks := 0

	for {
		hdrOff := format.HeaderOffset(bp)
		if hdrOff+format.WordSize > len(data) {
			return &ValidationError{
				Type:    "Partition",
				Message: fmt.Sprintf("header beyond arena end 0x%X (no epilogue)", len(data)),
				Offset:  hdrOff,
				Details: map[string]interface{}{"blocks": blocks},
			}
		}

		raw := format.ReadU32(data, hdrOff)
		if raw&(format.AlignmentMask&^format.AllocatedBit) != 0 {
			return &ValidationError{
				Type:    "BlockSize",
				Message: fmt.Sprintf("reserved tag bits set: 0x%08X", raw),
				Offset:  hdrOff,
			}
		}
		tag := format.Unpack(raw)

		if tag.Size == 0 {
			return epilogue(data, hdrOff, tag, blocks)
		}

		if tag.Size < format.MinBlockSize {
			return &ValidationError{
				Type:    "BlockSize",
				Message: fmt.Sprintf("block size %d below minimum %d", tag.Size, format.MinBlockSize),
				Offset:  hdrOff,
			}
		}

		// The block, plus at least the epilogue word after it, must fit.
		if _, err := buf.CheckRange(len(data), hdrOff, tag.Size+format.WordSize); err != nil {
			return &ValidationError{
				Type:    "Partition",
				Message: fmt.Sprintf("block of %d bytes overruns arena end 0x%X", tag.Size, len(data)),
				Offset:  hdrOff,
			}
		}

		if !tag.Allocated {
			if prevFree {
				return &ValidationError{
					Type:    "Coalescing",
					Message: "adjacent free blocks",
					Offset:  hdrOff,
				}
			}
			ftrOff := format.FooterOffset(bp, tag.Size)
			if ftr := format.ReadU32(data, ftrOff); ftr != raw {
				return &ValidationError{
					Type:    "BoundaryTag",
					Message: fmt.Sprintf("free block footer 0x%08X != header 0x%08X", ftr, raw),
					Offset:  ftrOff,
					Details: map[string]interface{}{
						"header": raw,
						"footer": ftr,
					},
				}
			}
		}

		prevFree = !tag.Allocated
		blocks++
		bp += tag.Size
	}
}

// epilogue checks the zero-size terminator found at hdrOff.
func epilogue(data []byte, hdrOff int, tag format.Tag, blocks int) error {
	if !tag.Allocated {
		return &ValidationError{
			Type:    "Sentinel",
			Message: "epilogue not marked allocated",
			Offset:  hdrOff,
		}
	}
	if hdrOff+format.WordSize != len(data) {
		return &ValidationError{
			Type:    "Partition",
			Message: fmt.Sprintf("epilogue at 0x%X but arena ends at 0x%X", hdrOff, len(data)),
			Offset:  hdrOff,
			Details: map[string]interface{}{
				"blocks":    blocks,
				"arena_end": len(data),
			},
		}
	}
	return nil
}

// File maps a saved arena image read-only and validates it with its
// scaffold at base.
func File(path string, base int) error {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("open arena image: %w", err)
	}
	defer cleanup()
	return Arena(data, base)
}
