package freelist_test

import (
	"testing"

	"github.com/brkheap/heapalloc/block"
	"github.com/brkheap/heapalloc/freelist"
	"github.com/brkheap/heapalloc/sizeclass"
	"github.com/stretchr/testify/require"
)

func TestPushThenPullFitFirstFit(t *testing.T) {
	mem := make([]byte, 256)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyFirstFit)

	r.Push(0, 64)
	got := r.PullFit(32)
	require.Equal(t, 0, got)

	size, free := block.ReadHeader(mem, 0)
	require.Equal(t, 64, size)
	require.False(t, free)
}

func TestPullFitReturnsNoBlockWhenEmpty(t *testing.T) {
	mem := make([]byte, 256)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyFirstFit)

	require.Equal(t, freelist.NoBlock, r.PullFit(64))
}

func TestPullFitScansUpToLargerBin(t *testing.T) {
	mem := make([]byte, 256)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyFirstFit)

	// only a 256-byte block exists; a 40-byte request must still find it
	r.Push(0, 256)
	got := r.PullFit(40)
	require.Equal(t, 0, got)
}

func TestBestFitReturnsSmallestAdequateBlock(t *testing.T) {
	mem := make([]byte, 512)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyBestFit)

	// two blocks land in the same bin (both >=32 and <64): sizes 40 and 56
	r.Push(0, 40)
	r.Push(64, 56)

	got := r.PullFit(40)
	require.Equal(t, 0, got, "best fit should prefer the smaller adequate block")
}

func TestExtractRemovesBlockWithoutChangingFreeFlag(t *testing.T) {
	mem := make([]byte, 256)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyFirstFit)

	r.Push(0, 64)
	r.Extract(0, 64)

	_, free := block.ReadHeader(mem, 0)
	require.True(t, free, "Extract must not clear the free flag")
	require.Equal(t, freelist.NoBlock, r.PullFit(32), "extracted block must no longer be reachable from a bin")
}

func TestPushPrependsMultipleBlocksIntoSameBinChain(t *testing.T) {
	mem := make([]byte, 256)
	cfg := sizeclass.DefaultConfig()
	r := freelist.New(mem, cfg, freelist.PolicyFirstFit)

	r.Push(0, 40)
	r.Push(48, 40)

	first := r.PullFit(40)
	second := r.PullFit(40)
	require.Equal(t, []int{48, 0}, []int{first, second}, "the most recently pushed block heads the chain")
}
