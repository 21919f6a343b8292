// Package freelist implements the segregated free-list registry: a set of
// doubly linked chains, one per size-class bin, that the allocator searches
// when looking for a block to satisfy an allocation.
//
// The registry never owns heap memory. It operates on a caller-supplied
// byte slice, reading and writing the header/footer/link bytes in place
// through package block, the same collaborator-not-owner relationship
// TLSF's findFreeBlock/insertFreeBlock/removeFreeBlock have with its
// backing metadata in the memutils control-flow this package is grounded on.
package freelist

import (
	"github.com/brkheap/heapalloc/block"
	"github.com/brkheap/heapalloc/sizeclass"
)

// NoBlock is the sentinel offset meaning "no block", used both as a link
// terminator and as PullFit's not-found return.
const NoBlock = -1

// Policy selects how a bin's chain is searched and ordered.
type Policy int

const (
	// PolicyFirstFit returns the first block in a bin large enough to hold
	// the request. Insertion is O(1): new free blocks are pushed to the
	// front of their bin's chain.
	PolicyFirstFit Policy = iota
	// PolicyBestFit keeps each bin's chain sorted ascending by size and
	// returns the first (smallest) adequate block, trading O(n) insertion
	// for a tighter fit.
	PolicyBestFit
)

// Registry is the segregated free-list structure: one chain head per
// size-class bin, indexed by sizeclass.Config.BinOf.
type Registry struct {
	mem    []byte
	cfg    sizeclass.Config
	policy Policy
	heads  []int
}

// New builds an empty registry over mem, sized for cfg's number of bins.
func New(mem []byte, cfg sizeclass.Config, policy Policy) *Registry {
	heads := make([]int, cfg.NumBins())
	for i := range heads {
		heads[i] = NoBlock
	}
	return &Registry{mem: mem, cfg: cfg, policy: policy, heads: heads}
}

// Rebind points the registry at a new backing slice. Heap.Reset calls it
// after resetting the region, which keeps the same backing slice.
func (r *Registry) Rebind(mem []byte) { r.mem = mem }

// Reset empties every bin without touching the backing bytes.
func (r *Registry) Reset() {
	for i := range r.heads {
		r.heads[i] = NoBlock
	}
}

// Push marks the block at blockOffset free and inserts it into the bin
// matching its size. The header and footer are written here, so callers
// pass the block's true size and rely on Push to tag it.
func (r *Registry) Push(blockOffset, size int) {
	block.WriteHeader(r.mem, blockOffset, size, true)
	block.WriteFooter(r.mem, blockOffset, size, true)

	bin := r.cfg.BinOf(size)
	switch r.policy {
	case PolicyBestFit:
		r.insertSorted(bin, blockOffset, size)
	default:
		r.prepend(bin, blockOffset)
	}
}

func (r *Registry) prepend(bin, blockOffset int) {
	head := r.heads[bin]
	block.WritePrevFree(r.mem, blockOffset, NoBlock)
	block.WriteNextFree(r.mem, blockOffset, head)
	if head != NoBlock {
		block.WritePrevFree(r.mem, head, blockOffset)
	}
	r.heads[bin] = blockOffset
}

// insertSorted walks bin's chain until it finds a block at least as large
// as size and splices the new block in just before it, keeping the chain
// ascending so PullFit under PolicyBestFit returns the tightest fit first.
func (r *Registry) insertSorted(bin, blockOffset, size int) {
	prev := NoBlock
	cur := r.heads[bin]
	for cur != NoBlock {
		curSize, _ := block.ReadHeader(r.mem, cur)
		if curSize >= size {
			break
		}
		prev = cur
		cur = block.ReadNextFree(r.mem, cur)
	}

	block.WritePrevFree(r.mem, blockOffset, prev)
	block.WriteNextFree(r.mem, blockOffset, cur)
	if cur != NoBlock {
		block.WritePrevFree(r.mem, cur, blockOffset)
	}
	if prev != NoBlock {
		block.WriteNextFree(r.mem, prev, blockOffset)
	} else {
		r.heads[bin] = blockOffset
	}
}

// PullFit searches for a free block of at least size bytes, starting at
// startBin and scanning upward through larger bins until one yields a hit.
// The found block is unlinked and its header/footer flipped to allocated
// before it is returned. It returns NoBlock if no bin has a fit.
func (r *Registry) PullFit(size int) int {
	startBin := r.cfg.BinOf(size)
	for bin := startBin; bin < len(r.heads); bin++ {
		for cur := r.heads[bin]; cur != NoBlock; cur = block.ReadNextFree(r.mem, cur) {
			curSize, _ := block.ReadHeader(r.mem, cur)
			if curSize < size {
				continue
			}
			r.unlink(bin, cur)
			block.WriteHeader(r.mem, cur, curSize, false)
			block.WriteFooter(r.mem, cur, curSize, false)
			return cur
		}
	}
	return NoBlock
}

// Extract unlinks the block at blockOffset from its current bin without
// touching its free flag, for the coalesce path where a neighbor is pulled
// out of its bin only to be immediately re-pushed as part of a larger block.
func (r *Registry) Extract(blockOffset, size int) {
	r.unlink(r.cfg.BinOf(size), blockOffset)
}

// Walk invokes fn once for every free block reachable from the registry, in
// (bin, chain-order) sequence, the same full-bins traversal the teacher's
// PrintDetailedMap-style block walk does. It exists so a caller can
// cross-check free-list reachability (I6) and size-class residency (I7)
// against an independent walk of the heap tile; it does not mutate anything.
func (r *Registry) Walk(fn func(bin, blockOffset, size int)) {
	for bin, head := range r.heads {
		for cur := head; cur != NoBlock; cur = block.ReadNextFree(r.mem, cur) {
			size, _ := block.ReadHeader(r.mem, cur)
			fn(bin, cur, size)
		}
	}
}

func (r *Registry) unlink(bin, blockOffset int) {
	prev := block.ReadPrevFree(r.mem, blockOffset)
	next := block.ReadNextFree(r.mem, blockOffset)

	if prev != NoBlock {
		block.WriteNextFree(r.mem, prev, next)
	} else {
		r.heads[bin] = next
	}
	if next != NoBlock {
		block.WritePrevFree(r.mem, next, prev)
	}
}
