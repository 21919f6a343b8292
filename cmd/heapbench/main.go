// Command heapbench is a minimal smoke driver for package allocator. It is
// not the trace-file replay driver a Validator would use; it exists to
// exercise allocate/free/reallocate end to end without one, and to give
// the allocator's logging stack a real call site.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/brkheap/heapalloc/allocator"
	"github.com/brkheap/heapalloc/freelist"
	"github.com/brkheap/heapalloc/sizeclass"
	"golang.org/x/exp/slog"
)

func main() {
	opsFlag := flag.Int("ops", 10_000, "number of allocate/free operations to run")
	seedFlag := flag.Int64("seed", 1, "PRNG seed")
	arenaFlag := flag.Int("arena", 64<<20, "backing arena size in bytes")
	bestFitFlag := flag.Bool("best-fit", false, "use best-fit free-list policy instead of first-fit")
	verboseFlag := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logOut := io.Discard
	if *verboseFlag {
		logOut = os.Stderr
	}
	logger := slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(logOut))

	policy := freelist.PolicyFirstFit
	if *bestFitFlag {
		policy = freelist.PolicyBestFit
	}

	h, err := allocator.New(
		allocator.WithConfig(sizeclass.DefaultConfig()),
		allocator.WithFreeListPolicy(policy),
		allocator.WithArenaCapacity(*arenaFlag),
		allocator.WithLogger(logger),
	)
	if err != nil {
		exitErr("initializing heap", err)
	}

	if err := runWorkload(h, *opsFlag, *seedFlag); err != nil {
		exitErr("running workload", err)
	}

	if code := h.Check(); code != 0 {
		exitErr("final invariant check failed", fmt.Errorf("violation at block %d", code))
	}

	fmt.Printf("ok: %d ops, heap span %d bytes\n", *opsFlag, int(h.HeapHi()-h.HeapLo()))
}

// runWorkload replays a synthetic malloc-lab-style trace: a mix of
// allocate, free, and reallocate calls against a pool of live pointers,
// the same shape a Validator's real trace replay takes but generated
// in-process instead of parsed from a file.
func runWorkload(h *allocator.Heap, ops int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	live := make([]allocator.Ptr, 0, ops)

	for i := 0; i < ops; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			n := 1 + rng.Intn(512)
			p := h.Allocate(n)
			if p == allocator.NullPtr {
				continue
			}
			live = append(live, p)
		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			h.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		default:
			idx := rng.Intn(len(live))
			n := 1 + rng.Intn(1024)
			q := h.Reallocate(live[idx], n)
			if q == allocator.NullPtr {
				continue
			}
			live[idx] = q
		}
	}

	for _, p := range live {
		h.Free(p)
	}
	return nil
}

func exitErr(context string, err error) {
	fmt.Fprintf(os.Stderr, "heapbench: %s: %v\n", context, err)
	os.Exit(1)
}
