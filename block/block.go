// Package block encodes the physical layout of a single heap block: an
// 8-byte header, an 8-byte footer, and the free-list link slots that
// overlay the payload while the block sits on a free list.
//
// The header and footer are fixed at 8 bytes regardless of configuration:
// PayloadOffset is always blockOffset+8, so a payload address only lands on
// a properly aligned boundary when sizeclass.Config.Alignment is itself 8
// and every block offset is 8-aligned in turn. sizeclass.Config.Validate
// enforces this; it is not a parameter block can generalize over.
//
// A block has no owning Go value. It is a tagged view over a region of the
// shared heap byte slice, addressed by its offset; callers read and write
// it in place the way the allocator engine does, never by copying it out
// into a struct that could drift from the bytes it describes.
package block

import "encoding/binary"

const (
	// HeaderSize is the width in bytes of the boundary tag at a block's low address.
	HeaderSize = 8
	// FooterSize is the width in bytes of the boundary tag at a block's high address.
	FooterSize = 8
	// TagSize is the combined overhead of header and footer.
	TagSize = HeaderSize + FooterSize
	// LinkSize is the width in bytes of one free-list link (next or prev).
	LinkSize = 8
	// MinPayload is the smallest payload a block must support so that, once
	// free, its first bytes can hold both free-list links (I8).
	MinPayload = 2 * LinkSize
	// MinSize is the smallest legal total block size: header, both links, footer.
	MinSize = HeaderSize + MinPayload + FooterSize

	freeFlag uint64 = 0x1
)

func pack(size int, free bool) uint64 {
	v := uint64(size)
	if free {
		v |= freeFlag
	}
	return v
}

func unpack(v uint64) (size int, free bool) {
	return int(v &^ freeFlag), v&freeFlag != 0
}

// WriteHeader packs size and free into the header at the block's low address.
func WriteHeader(mem []byte, blockOffset, size int, free bool) {
	binary.LittleEndian.PutUint64(mem[blockOffset:], pack(size, free))
}

// ReadHeader unpacks the header at the block's low address.
func ReadHeader(mem []byte, blockOffset int) (size int, free bool) {
	return unpack(binary.LittleEndian.Uint64(mem[blockOffset:]))
}

// WriteFooter packs size and free into the footer at the block's high address.
// The footer's location is derived from blockOffset and size, not stored separately.
func WriteFooter(mem []byte, blockOffset, size int, free bool) {
	binary.LittleEndian.PutUint64(mem[blockOffset+size-FooterSize:], pack(size, free))
}

// ReadFooterAt reads the boundary tag whose footer ends exactly at blockEnd.
// This is how a block's left neighbor is recovered in O(1): the footer
// immediately preceding blockEnd belongs to whatever block sits to the left.
func ReadFooterAt(mem []byte, blockEnd int) (size int, free bool) {
	return unpack(binary.LittleEndian.Uint64(mem[blockEnd-FooterSize:]))
}

// PayloadOffset returns the address of a block's payload given its own offset.
func PayloadOffset(blockOffset int) int { return blockOffset + HeaderSize }

// BlockOffset returns a block's own offset given the address of its payload.
func BlockOffset(payloadOffset int) int { return payloadOffset - HeaderSize }

// PayloadCapacity returns the usable payload bytes in a block of the given total size.
func PayloadCapacity(totalSize int) int { return totalSize - TagSize }

// WriteNextFree and WritePrevFree overlay the free-list link slots onto the
// first bytes of a free block's payload. They must not be read or written
// while the block is in use: the caller borrows those bytes as data then.

func WriteNextFree(mem []byte, blockOffset, next int) {
	binary.LittleEndian.PutUint64(mem[PayloadOffset(blockOffset):], uint64(int64(next)))
}

func ReadNextFree(mem []byte, blockOffset int) int {
	return int(int64(binary.LittleEndian.Uint64(mem[PayloadOffset(blockOffset):])))
}

func WritePrevFree(mem []byte, blockOffset, prev int) {
	binary.LittleEndian.PutUint64(mem[PayloadOffset(blockOffset)+LinkSize:], uint64(int64(prev)))
}

func ReadPrevFree(mem []byte, blockOffset int) int {
	return int(int64(binary.LittleEndian.Uint64(mem[PayloadOffset(blockOffset)+LinkSize:])))
}
