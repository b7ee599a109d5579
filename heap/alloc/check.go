package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Check walks the block chain from the first block to the epilogue and
// reports whether every block's footer lies strictly before the next
// block's header and the walk ends exactly at the epilogue. It is a cheap
// structural probe; heap/verify checks every invariant.
func (a *Allocator) Check() bool {
	if a.heapList == 0 {
		return false
	}
	data := a.g.Bytes()
	bp := format.NextBlock(data, a.heapList)
	for {
		hdr := format.HeaderOffset(bp)
		if hdr < 0 || hdr+format.WordSize > len(data) {
			return false
		}
		size := format.SizeAt(data, hdr)
		if size == 0 {
			return hdr+format.WordSize == len(data)
		}
		next := bp + size
		if format.FooterOffset(bp, size) >= format.HeaderOffset(next) {
			return false
		}
		bp = next
	}
}
