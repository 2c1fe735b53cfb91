package admission

import (
	"context"
	"sync"
)

// Result is the completion handle for a submitted operation. Exactly one
// of value or error is set, exactly once, after which Done is closed.
type Result struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Resolved returns an already-completed Result. Useful for surfacing
// errors detected before submission without burning a permit.
func Resolved(value any, err error) *Result {
	r := newResult()
	r.resolve(value, err)
	return r
}

// resolve sets the outcome. Later calls are ignored.
func (r *Result) resolve(value any, err error) {
	r.once.Do(func() {
		r.value = value
		r.err = err
		close(r.done)
	})
}

// Done returns a channel that is closed when the result is available.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the result is available or the context is cancelled.
func (r *Result) Wait(ctx context.Context) (any, error) {
	select {
	case <-r.done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Value returns the value. Only valid after Done is closed.
func (r *Result) Value() any {
	return r.value
}

// Err returns the error. Only valid after Done is closed.
func (r *Result) Err() error {
	return r.err
}
