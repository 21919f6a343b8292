package allocator_test

import (
	"testing"

	"github.com/brkheap/heapalloc/allocator"
	"github.com/brkheap/heapalloc/block"
	"github.com/stretchr/testify/require"
)

func TestCheckDetectsFreeBlockUnreachableFromFreeList(t *testing.T) {
	h := newHeap(t)
	p := h.Allocate(64)
	require.NotEqual(t, allocator.NullPtr, p)
	require.Zero(t, h.Check())

	// flip the block's tags to free without ever pushing it onto a bin,
	// simulating a free-list bug (e.g. a Push that forgot to link) rather
	// than going through Free.
	bOff := int(p) - block.HeaderSize
	mem := h.DebugBytes()
	size, _ := block.ReadHeader(mem, bOff)
	block.WriteHeader(mem, bOff, size, true)
	block.WriteFooter(mem, bOff, size, true)

	require.NotZero(t, h.Check(), "a block marked free but unreachable from any bin must fail Check")
}

func TestCheckPassesAfterNormalFreeReachesFreeList(t *testing.T) {
	h := newHeap(t)
	p := h.Allocate(64)
	require.NotEqual(t, allocator.NullPtr, p)

	h.Free(p)
	require.Zero(t, h.Check(), "a block freed through Free must be reachable from its bin")
}
