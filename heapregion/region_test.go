package heapregion_test

import (
	"testing"

	"github.com/brkheap/heapalloc/heapregion"
	"github.com/brkheap/heapalloc/sizeclass"
	"github.com/stretchr/testify/require"
)

func TestNewAlignsLowToCacheLine(t *testing.T) {
	src := heapregion.NewSliceBreakPointer(4096)
	r, err := heapregion.New(src, sizeclass.CacheLineSize)
	require.NoError(t, err)
	require.Zero(t, r.Low()%sizeclass.CacheLineSize)
	require.Equal(t, r.Low(), r.High())
	require.Equal(t, heapregion.NoAnchor, r.Anchor())
}

func TestGrowAdvancesHighWaterMark(t *testing.T) {
	src := heapregion.NewSliceBreakPointer(4096)
	r, err := heapregion.New(src, sizeclass.CacheLineSize)
	require.NoError(t, err)

	off, err := r.Grow(128)
	require.NoError(t, err)
	require.Equal(t, r.Low(), off)
	require.Equal(t, r.Low()+128, r.High())
	require.True(t, r.Contains(off))
	require.False(t, r.Contains(r.High()))
}

func TestGrowFailsWhenExhausted(t *testing.T) {
	src := heapregion.NewSliceBreakPointer(64)
	r, err := heapregion.New(src, sizeclass.CacheLineSize)
	require.NoError(t, err)

	_, err = r.Grow(1 << 20)
	require.ErrorIs(t, err, heapregion.ErrHeapExhausted)
}

func TestResetRestoresLowAndClearsAnchor(t *testing.T) {
	src := heapregion.NewSliceBreakPointer(4096)
	r, err := heapregion.New(src, sizeclass.CacheLineSize)
	require.NoError(t, err)

	_, err = r.Grow(256)
	require.NoError(t, err)
	r.SetAnchor(r.Low())

	require.NoError(t, r.Reset())
	require.Equal(t, r.Low(), r.High())
	require.Equal(t, heapregion.NoAnchor, r.Anchor())
}
