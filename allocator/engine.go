package allocator

import (
	"github.com/brkheap/heapalloc/block"
	"github.com/brkheap/heapalloc/freelist"
	"github.com/brkheap/heapalloc/heapregion"
)

// maxRepresentableSize bounds the total size a single block may claim: one
// size class above the top bin's lower edge, the ceiling spec.md's
// allocate step 1 calls "the largest representable size".
func (h *Heap) maxRepresentableSize() int {
	return 1 << h.cfg.MaxPow
}

// Allocate returns a Ptr to a payload of at least n bytes, or NullPtr if the
// request cannot be satisfied. The payload's contents are not initialized.
func (h *Heap) Allocate(n int) Ptr {
	h.debugCheck()
	p := h.allocate(n)
	h.debugCheck()
	return p
}

func (h *Heap) allocate(n int) Ptr {
	req := h.reqSize(n)
	if req > h.maxRepresentableSize() {
		h.log("allocate: request too large", "n", n, "req", req)
		return NullPtr
	}

	if bOff := h.free.PullFit(req); bOff != freelist.NoBlock {
		size, _ := block.ReadHeader(h.mem(), bOff)
		h.shrink(bOff, size, req)
		return payloadOf(bOff)
	}

	if anchor := h.region.Anchor(); anchor != heapregion.NoAnchor {
		topSize, topFree := block.ReadHeader(h.mem(), anchor)
		if topFree && right(anchor, topSize) == h.region.High() {
			h.free.Extract(anchor, topSize)
			if _, err := h.region.Grow(req - topSize); err != nil {
				// leave the extracted block's tags as they were; re-push it
				// so allocate's failure does not mutate observable state
				h.free.Push(anchor, topSize)
				h.log("allocate: heap exhausted extending top", "req", req, "err", err)
				return NullPtr
			}
			block.WriteHeader(h.mem(), anchor, req, false)
			block.WriteFooter(h.mem(), anchor, req, false)
			h.log("allocate: extended top block", "offset", anchor, "req", req)
			return payloadOf(anchor)
		}
	}

	off, err := h.region.Grow(req)
	if err != nil {
		h.log("allocate: heap exhausted", "req", req, "err", err)
		return NullPtr
	}
	block.WriteHeader(h.mem(), off, req, false)
	block.WriteFooter(h.mem(), off, req, false)
	h.region.SetAnchor(off)
	h.log("allocate: grew new block", "offset", off, "req", req)
	return payloadOf(off)
}

// Free releases the block at p back to the free-list registry, coalescing
// it with any free neighbors. Freeing NullPtr is a no-op.
func (h *Heap) Free(p Ptr) {
	h.debugCheck()
	h.free_(p)
	h.debugCheck()
}

func (h *Heap) free_(p Ptr) {
	if p == NullPtr {
		return
	}
	bOff := blockOf(p)
	if !h.region.Contains(bOff) {
		h.raiseFatal(ErrInvalidFree, "offset", bOff)
		return
	}
	size, free := block.ReadHeader(h.mem(), bOff)
	if free {
		h.raiseFatal(ErrDoubleFree, "offset", bOff)
		return
	}
	if fsize, ffree := block.ReadFooterAt(h.mem(), right(bOff, size)); fsize != size || ffree != free {
		h.raiseFatal(ErrCorruptBoundary, "offset", bOff)
		return
	}
	h.coalesce(bOff, size)
}

// Reallocate resizes the block at p to hold n bytes, preserving the first
// min(n, old payload size) bytes of content. p == NullPtr behaves as
// Allocate(n); n == 0 behaves as Free(p) and returns NullPtr.
func (h *Heap) Reallocate(p Ptr, n int) Ptr {
	h.debugCheck()
	q := h.reallocate(p, n)
	h.debugCheck()
	return q
}

func (h *Heap) reallocate(p Ptr, n int) Ptr {
	if p == NullPtr {
		return h.allocate(n)
	}
	if n == 0 {
		h.free_(p)
		return NullPtr
	}

	req := h.reqSize(n)
	bOff := blockOf(p)
	size, _ := block.ReadHeader(h.mem(), bOff)

	if req == size {
		return p
	}
	if req < size {
		h.shrink(bOff, size, req)
		return p
	}
	if right(bOff, size) == h.region.High() {
		if _, err := h.region.Grow(req - size); err != nil {
			h.log("reallocate: heap exhausted growing top", "req", req, "err", err)
			return NullPtr
		}
		block.WriteHeader(h.mem(), bOff, req, false)
		block.WriteFooter(h.mem(), bOff, req, false)
		return p
	}

	rOff := right(bOff, size)
	if rOff < h.region.High() {
		rSize, rFree := block.ReadHeader(h.mem(), rOff)
		if rFree && size+rSize >= req {
			h.free.Extract(rOff, rSize)
			merged := size + rSize
			block.WriteHeader(h.mem(), bOff, merged, false)
			block.WriteFooter(h.mem(), bOff, merged, false)
			// rOff may have been the top-block anchor; it is now interior
			// to bOff, so the anchor must move to bOff before shrink runs
			// (shrink's own coalesce call re-derives it again if the split
			// happens, but shrink's no-split early return does not).
			if right(bOff, merged) == h.region.High() {
				h.region.SetAnchor(bOff)
			}
			h.shrink(bOff, merged, req)
			return p
		}
	}

	oldPayload := block.PayloadCapacity(size)
	q := h.allocate(n)
	if q == NullPtr {
		return NullPtr
	}
	copyLen := n
	if oldPayload < copyLen {
		copyLen = oldPayload
	}
	mem := h.mem()
	copy(mem[int(q):int(q)+copyLen], mem[int(p):int(p)+copyLen])
	h.free_(p)
	return q
}

// coalesce merges the block at bOff with any free neighbors, preserving
// I5 (no two adjacent free blocks), and pushes the surviving block onto
// the free-list registry. Right-merge runs before left-merge so the
// last-block anchor, if it needs updating, is computed once from the
// final merged extent.
func (h *Heap) coalesce(bOff, size int) {
	mem := h.mem()

	rOff := right(bOff, size)
	if rOff < h.region.High() {
		rSize, rFree := block.ReadHeader(mem, rOff)
		if rFree {
			h.free.Extract(rOff, rSize)
			size += rSize
		}
	}

	finalOff := bOff
	if bOff > h.region.Low() {
		lSize, lFree := block.ReadFooterAt(mem, bOff)
		if lFree {
			lOff := bOff - lSize
			h.free.Extract(lOff, lSize)
			size += lSize
			finalOff = lOff
		}
	}

	h.free.Push(finalOff, size)

	if right(finalOff, size) == h.region.High() {
		h.region.SetAnchor(finalOff)
	}
}

// shrink splits the block at bOff into a req-sized head and, if the
// remainder is large enough to be a legal block (I8), a free tail that is
// coalesced with whatever lies to its right.
func (h *Heap) shrink(bOff, size, req int) {
	rem := size - req
	if rem < block.MinSize {
		return
	}
	block.WriteHeader(h.mem(), bOff, req, false)
	block.WriteFooter(h.mem(), bOff, req, false)

	tailOff := right(bOff, req)
	block.WriteHeader(h.mem(), tailOff, rem, true)
	block.WriteFooter(h.mem(), tailOff, rem, true)
	h.coalesce(tailOff, rem)
}
