// Package observable is the push side of seqkit.
//
// An Observable pushes values to an Observer until it completes, fails, or
// the subscriber disposes the returned Disposable. Create is the general
// constructor: the producer runs on its own goroutine and learns about
// disposal through its context.
//
//	src := observable.Create(func(ctx context.Context, emit func(int) bool) error {
//	    for i := 0; ; i++ {
//	        if !emit(i) {
//	            return nil
//	        }
//	    }
//	})
//	evens := observable.Where(src, func(n int) bool { return n%2 == 0 })
//
// Package blocking turns observables into blocking results and pull
// sequences; FromSource goes the other way.
package observable
