package blocking

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/seqkit/errors"
)

// Gate is a single-use signal: it moves from unset to set exactly once and
// wakes every waiter when it does.
type Gate struct {
	set  atomic.Bool
	done chan struct{}
}

// NewGate returns an unset gate.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Set moves the gate to set. It reports whether this call made the
// transition; later calls are no-ops.
func (g *Gate) Set() bool {
	if !g.set.CompareAndSwap(false, true) {
		return false
	}
	close(g.done)
	return true
}

// Wait blocks until the gate is set or ctx is done. A gate that is already
// set wins over a done context.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		select {
		case <-g.done:
			return nil
		default:
			return errors.Canceled(ctx.Err())
		}
	}
}

// Done returns a channel closed when the gate is set.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// IsSet reports whether the gate has been set.
func (g *Gate) IsSet() bool {
	return g.set.Load()
}

// Release sets the gate if nobody did, so no waiter outlives the operation
// that owns it.
func (g *Gate) Release() {
	g.Set()
}
