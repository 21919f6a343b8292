// Package allocator implements the allocator engine: allocate, free, and
// reallocate over a heapregion-managed heap, using block for the physical
// layout and freelist for the segregated free-list registry.
//
// A Heap is not safe for concurrent use. Sharding whole Heap instances
// across goroutines is the supported path to concurrency; there is no
// internal locking.
package allocator

import (
	"github.com/brkheap/heapalloc/block"
	"github.com/brkheap/heapalloc/freelist"
	"github.com/brkheap/heapalloc/heapregion"
	"github.com/brkheap/heapalloc/sizeclass"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// Ptr is an address into a Heap's backing bytes: a plain offset, not a Go
// pointer or slice, so it stays valid across heap growth (the backing array
// a SliceBreakPointer reserves up front never moves or reallocates).
type Ptr int

// NullPtr is the sentinel Ptr returned on allocation failure or passed to
// mean "no block", matching spec.md's Null.
const NullPtr Ptr = -1

const defaultArenaCapacity = 64 << 20 // 64 MiB, generous for bench/test traces

// Heap is the allocator engine's public ABI surface: the only capability
// set a Validator-style collaborator needs (init, reset, allocate, free,
// reallocate, heap_lo, heap_hi, check).
type Heap struct {
	cfg    sizeclass.Config
	policy freelist.Policy
	logger *slog.Logger

	arenaCapacity int
	src           heapregion.BreakPointerSource

	region *heapregion.Region
	free   *freelist.Registry

	lastViolationBlock int
}

// New constructs a Heap with the given options applied over sensible
// defaults (DefaultConfig, first-fit policy, a private 64 MiB arena, no
// logging) and calls Init.
func New(opts ...Option) (*Heap, error) {
	h := &Heap{
		cfg:           sizeclass.DefaultConfig(),
		policy:        freelist.PolicyFirstFit,
		arenaCapacity: defaultArenaCapacity,
	}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "allocator: invalid configuration")
	}
	if h.src == nil {
		h.src = heapregion.NewSliceBreakPointer(h.arenaCapacity)
	}
	if err := h.Init(); err != nil {
		return nil, err
	}
	return h, nil
}

// Init (re)initializes the heap to empty: bins cleared, break pointer
// aligned to a cache line. It is also what New calls. Calling it again keeps
// the same BreakPointerSource and starts a new empty region at that
// source's current break pointer, above any earlier growth; unlike Reset it
// does not collapse the break pointer.
func (h *Heap) Init() error {
	region, err := heapregion.New(h.src, sizeclass.CacheLineSize)
	if err != nil {
		return errors.Wrap(err, "allocator: initializing heap region")
	}
	h.region = region
	h.free = freelist.New(h.region.Bytes(), h.cfg, h.policy)
	h.log("heap initialized", "lo", h.region.Low(), "cache_line", sizeclass.CacheLineSize)
	return nil
}

// Reset collapses the heap back to empty between trace runs: the region's
// break pointer first (cache-line realignment redone), then the engine's
// free-list state, two separate collaborators each owning their own reset.
func (h *Heap) Reset() error {
	if err := h.region.Reset(); err != nil {
		return errors.Wrap(err, "allocator: resetting heap region")
	}
	h.free.Rebind(h.region.Bytes())
	h.free.Reset()
	h.log("heap reset")
	return nil
}

// HeapLo returns the inclusive low address of the heap.
func (h *Heap) HeapLo() Ptr { return Ptr(h.region.Low()) }

// HeapHi returns the exclusive high address of the heap.
func (h *Heap) HeapHi() Ptr { return Ptr(h.region.High()) }

func (h *Heap) log(msg string, args ...any) {
	if h.logger == nil {
		return
	}
	h.logger.Debug(msg, args...)
}

func (h *Heap) mem() []byte { return h.region.Bytes() }

// reqSize computes the total block size needed to satisfy an n-byte
// payload request: header + max(n, MinPayload) + footer, aligned up.
func (h *Heap) reqSize(n int) int {
	payload := n
	if payload < block.MinPayload {
		payload = block.MinPayload
	}
	total := block.HeaderSize + payload + block.FooterSize
	return h.cfg.AlignUp(total)
}

// right returns the offset of the block immediately to the right of the
// block at blockOffset with the given size, or the heap's high bound if
// blockOffset is the topmost block.
func right(blockOffset, size int) int { return blockOffset + size }

// payloadOf converts a block offset to the Ptr its payload starts at.
func payloadOf(blockOffset int) Ptr { return Ptr(block.PayloadOffset(blockOffset)) }

// blockOf converts a payload Ptr back to its block's offset.
func blockOf(p Ptr) int { return block.BlockOffset(int(p)) }
