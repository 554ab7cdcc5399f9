package blocking

import (
	"github.com/kbukum/seqkit/observable"
	"github.com/kbukum/seqkit/pipeline"
)

// Policy names used in spans, metrics and logs.
const (
	PolicyIterator   = "iterator"
	PolicyLatest     = "latest"
	PolicyMostRecent = "most_recent"
	PolicyNext       = "next"
	PolicyCollect    = "collect"
)

// Enumerate returns a pipeline over src that keeps every notification in an
// unbounded FIFO queue, so no value is lost. Each session subscribes once;
// closing the iterator disposes the subscription.
func Enumerate[T any](src observable.Observable[T]) *pipeline.Pipeline[T] {
	return bridge("blocking.enumerate", PolicyIterator, src, func() policy[T, T] {
		return &queuePolicy[T]{}
	})
}

type queuePolicy[T any] struct {
	queue []notification[T]
}

func (p *queuePolicy[T]) push(n notification[T]) (bool, int) {
	p.queue = append(p.queue, n)
	return true, 0
}

func (p *queuePolicy[T]) take() (notification[T], bool) {
	if len(p.queue) == 0 {
		return notification[T]{}, false
	}
	n := p.queue[0]
	p.queue[0] = notification[T]{}
	p.queue = p.queue[1:]
	return n, true
}

func (p *queuePolicy[T]) arm() {}

// Latest returns a pipeline that yields the latest value pushed since the
// previous pull, blocking while there is none. Unconsumed values are
// overwritten; a terminal notification overwrites the slot too.
func Latest[T any](src observable.Observable[T]) *pipeline.Pipeline[T] {
	return bridge("blocking.latest", PolicyLatest, src, func() policy[T, T] {
		return &latestPolicy[T]{}
	})
}

type latestPolicy[T any] struct {
	slot notification[T]
	full bool
}

func (p *latestPolicy[T]) push(n notification[T]) (bool, int) {
	dropped := 0
	if p.full && p.slot.kind == kindNext {
		dropped = 1
	}
	p.slot, p.full = n, true
	return true, dropped
}

func (p *latestPolicy[T]) take() (notification[T], bool) {
	if !p.full {
		return notification[T]{}, false
	}
	n := p.slot
	p.slot, p.full = notification[T]{}, false
	return n, true
}

func (p *latestPolicy[T]) arm() {}

// MostRecent returns a pipeline whose pulls never block: each yields the
// most recently pushed value, or initial until the first push. The same
// value is yielded again until a newer one arrives.
func MostRecent[T any](src observable.Observable[T], initial T) *pipeline.Pipeline[T] {
	return bridge("blocking.most_recent", PolicyMostRecent, src, func() policy[T, T] {
		return &mostRecentPolicy[T]{current: notification[T]{kind: kindNext, value: initial}}
	})
}

type mostRecentPolicy[T any] struct {
	current notification[T]
	// unseen is set while current holds a pushed value no pull has returned.
	unseen bool
}

func (p *mostRecentPolicy[T]) push(n notification[T]) (bool, int) {
	dropped := 0
	if p.unseen && p.current.kind == kindNext {
		dropped = 1
	}
	p.current = n
	p.unseen = n.kind == kindNext
	return false, dropped
}

func (p *mostRecentPolicy[T]) take() (notification[T], bool) {
	p.unseen = false
	return p.current, true
}

func (p *mostRecentPolicy[T]) arm() {}

// Next returns a pipeline whose every pull blocks until src pushes a value
// after the pull began. Values pushed while no pull is waiting are dropped.
func Next[T any](src observable.Observable[T]) *pipeline.Pipeline[T] {
	return bridge("blocking.next", PolicyNext, src, func() policy[T, T] {
		return &nextPolicy[T]{}
	})
}

type nextPolicy[T any] struct {
	waiting  bool
	value    T
	hasValue bool
	terminal *notification[T]
}

func (p *nextPolicy[T]) push(n notification[T]) (bool, int) {
	if n.kind != kindNext {
		p.terminal = &n
		return true, 0
	}
	if !p.waiting {
		return false, 1
	}
	p.value, p.hasValue, p.waiting = n.value, true, false
	return true, 0
}

func (p *nextPolicy[T]) take() (notification[T], bool) {
	if p.hasValue {
		n := notification[T]{kind: kindNext, value: p.value}
		var zero T
		p.value, p.hasValue = zero, false
		return n, true
	}
	if p.terminal != nil {
		return *p.terminal, true
	}
	return notification[T]{}, false
}

func (p *nextPolicy[T]) arm() {
	var zero T
	p.value, p.hasValue, p.waiting = zero, false, true
}
