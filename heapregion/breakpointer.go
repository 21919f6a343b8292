package heapregion

import "github.com/pkg/errors"

// ErrHeapExhausted is returned from Sbrk when the backing store cannot
// satisfy a requested growth. It is the Ptr-level signal spec.md calls
// HeapExhausted; callers above the HRM turn it into a Null return rather
// than propagating it as a Go error.
var ErrHeapExhausted error = errors.New("backing store cannot satisfy heap growth")

// BreakPointerSource is the host memory layer the Heap Region Manager wraps.
// It plays the role spec.md deliberately pushes out of scope: "the
// memory-layer shim that emulates brk is a collaborator, not the core."
// The allocator engine never talks to one directly; only Region does.
type BreakPointerSource interface {
	// Sbrk advances the break pointer by n bytes and returns the address it
	// was at before the advance. It returns ErrHeapExhausted if the backing
	// store has no more room; on failure the break pointer is unchanged.
	Sbrk(n int) (int, error)
	// Bytes returns a stable view of the entire backing store. Offsets
	// returned by Sbrk index into it, and the slice's identity never
	// changes across calls: real brk never moves pages it has already handed out.
	Bytes() []byte
	// ResetBrk collapses the break pointer back to zero, discarding all
	// growth. It is called between trace runs.
	ResetBrk()
}

// SliceBreakPointer is a reference BreakPointerSource backed by a single
// fixed-capacity byte slice allocated up front, the same way a malloc lab
// harness reserves a large virtual arena and lets the student's heap grow
// within it rather than emulating the kernel's real, unbounded brk. It
// exists for tests and the cmd/heapbench smoke driver; it is not part of
// the allocator's core.
type SliceBreakPointer struct {
	buf []byte
	top int
}

// NewSliceBreakPointer reserves an arena of the given capacity.
func NewSliceBreakPointer(capacity int) *SliceBreakPointer {
	return &SliceBreakPointer{buf: make([]byte, capacity)}
}

func (s *SliceBreakPointer) Sbrk(n int) (int, error) {
	if n < 0 {
		return 0, errors.Errorf("sbrk: negative increment %d", n)
	}
	if s.top+n > len(s.buf) {
		return 0, errors.Wrapf(ErrHeapExhausted, "requested %d bytes, only %d available", n, len(s.buf)-s.top)
	}
	old := s.top
	s.top += n
	return old, nil
}

func (s *SliceBreakPointer) Bytes() []byte { return s.buf }

func (s *SliceBreakPointer) ResetBrk() { s.top = 0 }
