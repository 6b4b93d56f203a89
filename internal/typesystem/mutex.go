package typesystem

import "sync"

// guard is the non-reentrant mutex discipline spec.md §5 calls for:
// the analysis never actually contends (it is single-threaded), but
// re-acquiring a handle already held from within the same operation
// is a logic bug and aborts the run rather than deadlocking silently.
type guard struct {
	mu sync.Mutex
}

func (g *guard) Lock() {
	if !g.mu.TryLock() {
		panic("typesystem: attempted to re-enter a locked handle")
	}
}

func (g *guard) Unlock() {
	g.mu.Unlock()
}
