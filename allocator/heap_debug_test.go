//go:build debug_heap_alloc

package allocator_test

import (
	"testing"

	"github.com/brkheap/heapalloc/allocator"
	"github.com/stretchr/testify/require"
)

func TestDoubleFreePanicsInDebugBuild(t *testing.T) {
	h := newHeap(t)
	p := h.Allocate(24)
	require.NotEqual(t, allocator.NullPtr, p)

	h.Free(p)
	require.PanicsWithError(t, allocator.ErrDoubleFree.Error(), func() {
		h.Free(p)
	})
}

func TestInvalidFreePanicsInDebugBuild(t *testing.T) {
	h := newHeap(t)
	require.PanicsWithError(t, allocator.ErrInvalidFree.Error(), func() {
		h.Free(h.HeapHi() + 4096)
	})
}
