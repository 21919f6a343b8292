package sizeclass_test

import (
	"testing"

	"github.com/brkheap/heapalloc/sizeclass"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, sizeclass.DefaultConfig().Validate())
}

func TestValidateRejectsNonPow2Alignment(t *testing.T) {
	cfg := sizeclass.DefaultConfig()
	cfg.Alignment = 24
	require.ErrorIs(t, cfg.Validate(), sizeclass.ErrNotPowerOfTwo)
}

func TestValidateRejectsNon8Alignment(t *testing.T) {
	cfg := sizeclass.DefaultConfig()
	cfg.Alignment = 16
	require.ErrorIs(t, cfg.Validate(), sizeclass.ErrUnsupportedAlignment)
}

func TestValidateRejectsInvertedPowRange(t *testing.T) {
	cfg := sizeclass.Config{Alignment: 8, MinPow: 10, MaxPow: 5}
	require.Error(t, cfg.Validate())
}

func TestAlignUpDown(t *testing.T) {
	cfg := sizeclass.DefaultConfig()
	require.Equal(t, 8, cfg.AlignUp(1))
	require.Equal(t, 8, cfg.AlignUp(8))
	require.Equal(t, 16, cfg.AlignUp(9))
	require.Equal(t, 8, cfg.AlignDown(15))
	require.Equal(t, 16, cfg.AlignDown(16))
}

func TestBinOfIsMonotonicAndInBounds(t *testing.T) {
	cfg := sizeclass.DefaultConfig()

	prev := -1
	for _, size := range []int{1, 8, 31, 32, 33, 63, 64, 1 << 20, 1 << 30} {
		bin := cfg.BinOf(size)
		require.GreaterOrEqual(t, bin, 0)
		require.Less(t, bin, cfg.NumBins())
		require.GreaterOrEqual(t, bin, prev, "BinOf must be monotonically non-decreasing")
		prev = bin
	}
}

func TestBinOfRespectsLowerBoundInvariant(t *testing.T) {
	// spec.md requires size >= 2^(bin+MinPow) for every block placed in
	// bins[bin]. This only needs to hold for sizes an allocator could ever
	// actually produce, i.e. at least 2^MinPow (the minimum block size).
	cfg := sizeclass.DefaultConfig()
	for size := 1 << cfg.MinPow; size < 1<<20; size += 7 {
		bin := cfg.BinOf(size)
		lowerBound := 1 << (uint(bin) + cfg.MinPow)
		require.GreaterOrEqual(t, size, lowerBound)
	}
}
