// Package sizeclass implements the power-of-two size-class index that maps
// a block's size to the free-list bin that should hold it.
package sizeclass

import (
	"math/bits"

	"github.com/cockroachdb/errors"
)

// CacheLineSize is the alignment Init uses for the very first byte of the
// heap, matching the host allocator's cache-line alignment of its break point.
const CacheLineSize = 64

// Config groups the compile-time-flavored constants that size the allocator:
// the payload alignment and the power-of-two range the size-class index covers.
type Config struct {
	// Alignment is the minimum alignment of every returned payload address.
	// Must be exactly 8: the header and footer are fixed 8-byte boundary
	// tags (package block), so PayloadOffset's blockOffset+8 is only
	// guaranteed alignment-aligned when Alignment is itself 8.
	Alignment uint
	// MinPow is the log2 of the smallest size class's lower bound.
	MinPow uint
	// MaxPow is the log2 of the largest size class's upper bound. NumBins is MaxPow-MinPow.
	MaxPow uint
}

// DefaultConfig returns the recommended defaults: 8-byte alignment, bins
// covering 32 bytes through 512 MiB.
func DefaultConfig() Config {
	return Config{Alignment: 8, MinPow: 5, MaxPow: 29}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Alignment < 8 {
		return errors.Newf("alignment must be at least 8 bytes, got %d", c.Alignment)
	}
	if c.Alignment&(c.Alignment-1) != 0 {
		return errors.Wrapf(ErrNotPowerOfTwo, "alignment is %d", c.Alignment)
	}
	if c.Alignment != 8 {
		return errors.Wrapf(ErrUnsupportedAlignment, "alignment is %d", c.Alignment)
	}
	if c.MinPow >= c.MaxPow {
		return errors.Newf("MinPow (%d) must be less than MaxPow (%d)", c.MinPow, c.MaxPow)
	}
	return nil
}

// NumBins is the number of free-list bins this configuration addresses.
func (c Config) NumBins() int { return int(c.MaxPow - c.MinPow) }

// AlignUp rounds v up to the nearest multiple of Alignment.
func (c Config) AlignUp(v int) int {
	a := int(c.Alignment)
	return (v + a - 1) &^ (a - 1)
}

// AlignDown rounds v down to the nearest multiple of Alignment.
func (c Config) AlignDown(v int) int {
	a := int(c.Alignment)
	return v &^ (a - 1)
}

// BinOf maps a block size to its free-list bin: floor(log2(size)) - MinPow,
// clamped to [0, NumBins-1]. bits.Len gives the position of the most
// significant set bit in constant time, the same leading-zero-based trick
// spec.md calls for.
func (c Config) BinOf(size int) int {
	if size < 1 {
		size = 1
	}
	msb := bits.Len(uint(size)) - 1
	bin := msb - int(c.MinPow)
	if bin < 0 {
		bin = 0
	}
	if n := c.NumBins(); bin >= n {
		bin = n - 1
	}
	return bin
}
