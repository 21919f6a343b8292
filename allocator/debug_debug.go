//go:build debug_heap_alloc

package allocator

// debugCheck re-derives every invariant before and after each public
// operation and panics on the first violation, the same panic-on-error
// shape a debug-tagged validate pass takes. It is compiled out entirely
// in release builds; see debug_prod.go.
func (h *Heap) debugCheck() {
	if err := h.validate(); err != nil {
		panic(err)
	}
}

// raiseFatal panics with err, the debug build's response to a precondition
// violation (InvalidFree, DoubleFree, CorruptBoundary).
func (h *Heap) raiseFatal(err error, kv ...any) {
	h.log(err.Error(), kv...)
	panic(err)
}
