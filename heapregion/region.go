package heapregion

import "github.com/cockroachdb/errors"

// Region tracks the live extent of the heap within a BreakPointerSource's
// backing bytes: the low address fixed at Init, the high-water mark the
// break pointer has reached, and the anchor of the current last block so
// the allocator engine can grow it in place instead of appending a new one.
type Region struct {
	src BreakPointerSource

	lo     int
	hi     int
	anchor int // offset of the current top (highest-addressed) block, or NoAnchor
}

// NoAnchor marks a region with no blocks yet.
const NoAnchor = -1

// New wraps src and advances the break pointer by the pad (fewer than align
// bytes, none if it is already aligned) that lands the initial break pointer
// on an align boundary, the same up-front
// alignment trim a real brk-based allocator performs before handing out its
// first block.
func New(src BreakPointerSource, align int) (*Region, error) {
	start, err := src.Sbrk(0)
	if err != nil {
		return nil, errors.Wrap(err, "heapregion: probing initial break")
	}
	pad := (align - start%align) % align
	if pad > 0 {
		if _, err := src.Sbrk(pad); err != nil {
			return nil, errors.Wrap(err, "heapregion: aligning initial break")
		}
	}
	lo := start + pad
	return &Region{src: src, lo: lo, hi: lo, anchor: NoAnchor}, nil
}

// Grow advances the break pointer by n bytes, extending the region's high
// edge, and returns the offset the new bytes start at.
func (r *Region) Grow(n int) (int, error) {
	off, err := r.src.Sbrk(n)
	if err != nil {
		return 0, err
	}
	r.hi = off + n
	return off, nil
}

// Low returns the region's fixed starting offset.
func (r *Region) Low() int { return r.lo }

// High returns the current break pointer, one past the last committed byte.
func (r *Region) High() int { return r.hi }

// Contains reports whether offset falls within the committed region.
func (r *Region) Contains(offset int) bool { return offset >= r.lo && offset < r.hi }

// Bytes returns the full backing slice, as BreakPointerSource.Bytes does.
func (r *Region) Bytes() []byte { return r.src.Bytes() }

// Anchor returns the offset of the current top block, or NoAnchor if the
// region holds no blocks.
func (r *Region) Anchor() int { return r.anchor }

// SetAnchor records the offset of the current top block.
func (r *Region) SetAnchor(blockOffset int) { r.anchor = blockOffset }

// Reset collapses the break pointer and forgets the anchor, returning the
// region to the state New produced: ResetBrk drops the source back to
// offset zero, so the cache-line alignment pad is redone exactly as it was
// at construction.
func (r *Region) Reset() error {
	r.src.ResetBrk()
	start, err := r.src.Sbrk(0)
	if err != nil {
		return errors.Wrap(err, "heapregion: probing break after reset")
	}
	if pad := r.lo - start; pad > 0 {
		if _, err := r.src.Sbrk(pad); err != nil {
			return errors.Wrap(err, "heapregion: realigning break after reset")
		}
	}
	r.hi = r.lo
	r.anchor = NoAnchor
	return nil
}
