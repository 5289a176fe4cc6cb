package agent

import "sync/atomic"

// Guard is a single-slot reentrancy lock: at most one trigger cycle runs at
// a time. It is the only state shared between the key-event path and the
// pipeline goroutine.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire returns true if the caller may start a cycle. A false return
// means a cycle is already in flight and the trigger must be dropped.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release returns the guard to idle. Idempotent: releasing an idle guard is
// a no-op, so it is safe to defer on every exit path.
func (g *Guard) Release() {
	g.busy.Store(false)
}

func (g *Guard) Busy() bool {
	return g.busy.Load()
}
