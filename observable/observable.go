package observable

// Observer receives the notifications of a push sequence: zero or more
// OnNext calls followed by at most one OnError or OnCompleted. Calls are never
// concurrent for one subscription, but may arrive on any goroutine.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnCompleted()
}

// Observable is a push sequence. Subscribe starts delivery to the observer and
// returns a Disposable that stops it.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) Disposable
}

// ObservableFunc adapts a subscribe function to Observable.
type ObservableFunc[T any] func(observer Observer[T]) Disposable

// Subscribe calls f.
func (f ObservableFunc[T]) Subscribe(observer Observer[T]) Disposable {
	return f(observer)
}

// ObserverFuncs builds an Observer from callbacks. Nil callbacks ignore
// their notification.
type ObserverFuncs[T any] struct {
	Next      func(T)
	Error     func(error)
	Completed func()
}

func (o ObserverFuncs[T]) OnNext(value T) {
	if o.Next != nil {
		o.Next(value)
	}
}

func (o ObserverFuncs[T]) OnError(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o ObserverFuncs[T]) OnCompleted() {
	if o.Completed != nil {
		o.Completed()
	}
}
