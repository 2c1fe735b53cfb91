// Package admission bounds the number of concurrently running operations
// and queues the overflow.
//
// A Pool holds a fixed number of permits. Work is submitted through a
// Scope: if a permit is free the operation starts immediately, otherwise
// the task waits in the scope's FIFO backlog until a running operation
// completes and releases its permit. Several scopes can share one pool,
// in which case a release in any scope allows a queued task from any
// sibling to run.
//
//	pool, err := admission.NewPool(4)
//	scope := pool.Scope()
//	res := scope.Submit(func(done admission.DoneFunc) {
//	    go func() { done(doWork()) }()
//	})
//	value, err := res.Wait(ctx)
//
// Submit never blocks; callers that want backpressure can use
// Pool.AwaitSlot or Pool.AwaitDrain.
package admission
