package allocator

import (
	"github.com/brkheap/heapalloc/heapregion"
	"github.com/pkg/errors"
)

// ErrHeapExhausted is returned internally when the backing heap region
// cannot grow to satisfy a request. It never escapes the public ABI:
// Allocate and Reallocate convert it to a NullPtr return, per spec §7.
var ErrHeapExhausted = heapregion.ErrHeapExhausted

// ErrInvalidFree is raised when Free is called with a pointer whose block
// offset lies outside the heap region. A pointer inside the heap that is not
// a block's payload address is not detected as such.
var ErrInvalidFree error = errors.New("pointer is not a live block payload")

// ErrDoubleFree is raised when Free is called on a block already marked free.
var ErrDoubleFree error = errors.New("block is already free")

// ErrCorruptBoundary is raised when a block's header and footer disagree,
// the boundary-tag consistency invariant (I3) this allocator otherwise
// maintains internally without the caller's help.
var ErrCorruptBoundary error = errors.New("block header and footer disagree")
