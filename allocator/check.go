package allocator

import (
	"github.com/brkheap/heapalloc/block"
	"github.com/cockroachdb/errors"
)

// Check re-derives every invariant (I1-I8) by walking the heap tile from
// heap_lo to heap_hi and cross-checking it against a full walk of the
// free-list registry, the same validation shape as a boundary-tag metadata
// walk. It returns 0 if no violation is found, matching the ABI's check()
// contract; a nonzero result is the 1-based position (in block count from
// heap_lo) of the first offending block.
func (h *Heap) Check() int {
	if err := h.validate(); err != nil {
		return h.lastViolationBlock + 1
	}
	return 0
}

// validate walks the tile once, checking I1 (payload alignment), I2
// (in-bounds), I3 (boundary-tag agreement), I4 (tiling), I5 (no adjacent
// free), and I8 (minimum size) for every block, then walks the free-list
// registry to check I6 (every free block is reachable from exactly one bin,
// and nothing else is) and I7 (every reachable block sits in the bin its
// size maps to). It records the offending block's ordinal (from heap_lo) in
// lastViolationBlock before returning.
func (h *Heap) validate() error {
	mem := h.mem()
	lo, hi := h.region.Low(), h.region.High()

	freeBlocks := make(map[int]int)
	indexOf := make(map[int]int)

	off := lo
	idx := 0
	var prevFree bool
	for off < hi {
		size, free := block.ReadHeader(mem, off)
		if size < block.MinSize {
			h.lastViolationBlock = idx
			return errors.Newf("block at %d: size %d below minimum %d, violates I8", off, size, block.MinSize)
		}
		if off+size > hi {
			h.lastViolationBlock = idx
			return errors.Newf("block at %d: size %d overruns heap_hi %d, violates I2", off, size, hi)
		}
		fsize, ffree := block.ReadFooterAt(mem, off+size)
		if fsize != size || ffree != free {
			h.lastViolationBlock = idx
			return errors.Wrapf(ErrCorruptBoundary, "block at %d: header(%d,%v) footer(%d,%v), violates I3", off, size, free, fsize, ffree)
		}
		if free && prevFree {
			h.lastViolationBlock = idx
			return errors.Newf("block at %d: adjacent free blocks violate I5", off)
		}
		if payload := block.PayloadOffset(off); payload%int(h.cfg.Alignment) != 0 {
			h.lastViolationBlock = idx
			return errors.Newf("block at %d: payload offset %d is not %d-aligned, violates I1", off, payload, h.cfg.Alignment)
		}
		if free {
			freeBlocks[off] = size
		}
		indexOf[off] = idx
		prevFree = free
		off += size
		idx++
	}
	if off != hi {
		h.lastViolationBlock = idx
		return errors.Newf("tile walk ended at %d, expected heap_hi %d, violates I4", off, hi)
	}

	seen := make(map[int]bool, len(freeBlocks))
	var walkErr error
	h.free.Walk(func(bin, blockOffset, size int) {
		if walkErr != nil {
			return
		}
		if walkIdx, ok := indexOf[blockOffset]; ok {
			h.lastViolationBlock = walkIdx
		} else {
			h.lastViolationBlock = idx
		}
		wantSize, isFree := freeBlocks[blockOffset]
		if !isFree {
			walkErr = errors.Newf("free list holds offset %d, which the tile walk does not show as a free block, violates I6", blockOffset)
			return
		}
		if seen[blockOffset] {
			walkErr = errors.Newf("block at %d is reachable from more than one free-list chain, violates I6", blockOffset)
			return
		}
		if wantSize != size {
			walkErr = errors.Newf("free list reports size %d for block at %d, tile walk shows %d", size, blockOffset, wantSize)
			return
		}
		if wantBin := h.cfg.BinOf(size); wantBin != bin {
			walkErr = errors.Newf("block at %d (size %d) sits in bin %d, should be in bin %d, violates I7", blockOffset, size, bin, wantBin)
			return
		}
		seen[blockOffset] = true
	})
	if walkErr != nil {
		return walkErr
	}
	if len(seen) != len(freeBlocks) {
		h.lastViolationBlock = idx
		for off := range freeBlocks {
			if !seen[off] && indexOf[off] < h.lastViolationBlock {
				h.lastViolationBlock = indexOf[off]
			}
		}
		return errors.Newf("tile walk found %d free blocks, free list reaches only %d, violates I6", len(freeBlocks), len(seen))
	}

	return nil
}
