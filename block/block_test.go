package block_test

import (
	"testing"

	"github.com/brkheap/heapalloc/block"
	"github.com/stretchr/testify/require"
)

func TestHeaderFooterRoundTrip(t *testing.T) {
	mem := make([]byte, 128)

	block.WriteHeader(mem, 16, 64, true)
	block.WriteFooter(mem, 16, 64, true)

	size, free := block.ReadHeader(mem, 16)
	require.Equal(t, 64, size)
	require.True(t, free)

	fsize, ffree := block.ReadFooterAt(mem, 16+64)
	require.Equal(t, size, fsize)
	require.Equal(t, free, ffree)
}

func TestFreeFlagDoesNotCorruptSize(t *testing.T) {
	mem := make([]byte, 64)

	block.WriteHeader(mem, 0, 40, false)
	size, free := block.ReadHeader(mem, 0)
	require.Equal(t, 40, size)
	require.False(t, free)

	block.WriteHeader(mem, 0, 40, true)
	size, free = block.ReadHeader(mem, 0)
	require.Equal(t, 40, size)
	require.True(t, free)
}

func TestPayloadOffsets(t *testing.T) {
	require.Equal(t, 8, block.PayloadOffset(0))
	require.Equal(t, 0, block.BlockOffset(8))
	require.Equal(t, 48, block.PayloadCapacity(64))
}

func TestFreeListLinksOverlayPayload(t *testing.T) {
	mem := make([]byte, 64)
	block.WriteHeader(mem, 0, block.MinSize, true)

	block.WriteNextFree(mem, 0, 24)
	block.WritePrevFree(mem, 0, -1)

	require.Equal(t, 24, block.ReadNextFree(mem, 0))
	require.Equal(t, -1, block.ReadPrevFree(mem, 0))
}
