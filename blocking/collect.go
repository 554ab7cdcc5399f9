package blocking

import (
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observable"
	"github.com/kbukum/seqkit/pipeline"
)

// Collect returns a pipeline whose pulls never block. Pushed values are
// merged into an accumulator created by newCollector; every pull yields the
// current accumulator and starts a fresh one. After completion pulls end,
// dropping whatever was merged since the previous pull.
func Collect[T, R any](src observable.Observable[T], newCollector func() R, merge func(R, T) R) *pipeline.Pipeline[R] {
	if newCollector == nil {
		return pipeline.Throw[R](errors.ArgumentNull("newCollector"))
	}
	return CollectFunc(src, newCollector, merge, func(R) R { return newCollector() })
}

// CollectFunc is Collect with a separate initial accumulator and a function
// deriving the next accumulator from the one just yielded.
func CollectFunc[T, R any](src observable.Observable[T], initial func() R, merge func(R, T) R, next func(R) R) *pipeline.Pipeline[R] {
	switch {
	case initial == nil:
		return pipeline.Throw[R](errors.ArgumentNull("initial"))
	case merge == nil:
		return pipeline.Throw[R](errors.ArgumentNull("merge"))
	case next == nil:
		return pipeline.Throw[R](errors.ArgumentNull("next"))
	}
	return bridge("blocking.collect", PolicyCollect, src, func() policy[T, R] {
		return &collectPolicy[T, R]{acc: initial(), merge: merge, next: next}
	})
}

// Chunkify returns a pipeline yielding the values pushed since the previous
// pull, in push order. A pull with nothing new yields an empty chunk.
func Chunkify[T any](src observable.Observable[T]) *pipeline.Pipeline[[]T] {
	return Collect(src,
		func() []T { return []T{} },
		func(chunk []T, v T) []T { return append(chunk, v) },
	)
}

type collectPolicy[T, R any] struct {
	acc   R
	merge func(R, T) R
	next  func(R) R

	err       error
	failed    bool
	completed bool
}

func (p *collectPolicy[T, R]) push(n notification[T]) (bool, int) {
	if p.failed || p.completed {
		return false, 0
	}
	switch n.kind {
	case kindNext:
		if err := p.fold(n.value); err != nil {
			p.err, p.failed = err, true
		}
	case kindError:
		p.err, p.failed = n.err, true
	case kindCompleted:
		p.completed = true
	}
	return false, 0
}

func (p *collectPolicy[T, R]) fold(v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()
	p.acc = p.merge(p.acc, v)
	return nil
}

func (p *collectPolicy[T, R]) take() (notification[R], bool) {
	switch {
	case p.failed:
		return notification[R]{kind: kindError, err: p.err}, true
	case p.completed:
		return notification[R]{kind: kindCompleted}, true
	}
	current := p.acc
	if err := p.advance(current); err != nil {
		p.err, p.failed = err, true
		return notification[R]{kind: kindError, err: err}, true
	}
	return notification[R]{kind: kindNext, value: current}, true
}

func (p *collectPolicy[T, R]) advance(current R) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()
	p.acc = p.next(current)
	return nil
}

func (p *collectPolicy[T, R]) arm() {}
