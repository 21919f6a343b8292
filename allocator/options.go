package allocator

import (
	"github.com/brkheap/heapalloc/freelist"
	"github.com/brkheap/heapalloc/heapregion"
	"github.com/brkheap/heapalloc/sizeclass"
	"golang.org/x/exp/slog"
)

// Option configures a Heap at construction time, the same functional-option
// shape used throughout the pack for multi-field creation structs.
type Option func(*Heap)

// WithConfig overrides the default size-class configuration.
func WithConfig(cfg sizeclass.Config) Option {
	return func(h *Heap) { h.cfg = cfg }
}

// WithFreeListPolicy selects the free-list registry's fit policy.
func WithFreeListPolicy(policy freelist.Policy) Option {
	return func(h *Heap) { h.policy = policy }
}

// WithLogger attaches a structured logger. A nil logger (the default)
// makes every log call on the Heap a no-op.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Heap) { h.logger = logger }
}

// WithArenaCapacity sizes the reference SliceBreakPointer that New builds
// when the caller does not supply its own heapregion.BreakPointerSource.
func WithArenaCapacity(capacity int) Option {
	return func(h *Heap) { h.arenaCapacity = capacity }
}

// WithBreakPointer supplies a custom backing memory layer instead of the
// default SliceBreakPointer, the seam a Validator's own harness uses to
// cap heap growth for exhaustion scenarios.
func WithBreakPointer(src heapregion.BreakPointerSource) Option {
	return func(h *Heap) { h.src = src }
}
