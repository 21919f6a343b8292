package allocator

import (
	"io"

	"github.com/brkheap/heapalloc/block"
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// DebugBytes exposes the heap's backing bytes directly. It exists for
// tests and the smoke driver to inspect or seed payload contents; a
// Validator has no need for it and should go through the ABI instead.
func (h *Heap) DebugBytes() []byte { return h.mem() }

// WriteDebugReport serializes a walk of every block currently tiling the
// heap (offset, size, free) as JSON to w. It is a read-only diagnostic,
// not a wire protocol: the encoding is not a contract a Validator should
// depend on.
func (h *Heap) WriteDebugReport(w io.Writer) error {
	mem := h.mem()
	lo, hi := h.region.Low(), h.region.High()

	jw := jwriter.NewWriter()
	obj := jw.Object()
	obj.Name("heap_lo").Int(lo)
	obj.Name("heap_hi").Int(hi)

	arr := obj.Name("blocks").Array()
	for off := lo; off < hi; {
		size, free := block.ReadHeader(mem, off)
		blk := arr.Object()
		blk.Name("offset").Int(off)
		blk.Name("size").Int(size)
		blk.Name("free").Bool(free)
		blk.End()
		off += size
	}
	arr.End()
	obj.End()

	if err := jw.Error(); err != nil {
		return errors.Wrap(err, "allocator: encoding debug report")
	}
	_, err := w.Write(jw.Bytes())
	return errors.Wrap(err, "allocator: writing debug report")
}
