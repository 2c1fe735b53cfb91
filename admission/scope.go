package admission

import (
	"errors"
	"sync/atomic"
)

// ErrScopeClosed is the error carried by results of tasks submitted to,
// or still queued in, a closed scope.
var ErrScopeClosed = errors.New("admission: scope is closed")

// DoneFunc reports the outcome of an operation. It must be called
// exactly once; extra calls are ignored.
type DoneFunc func(value any, err error)

// StartFunc begins an asynchronous operation under a held permit. The
// call itself should return quickly; the operation reports its outcome
// through done from whatever goroutine completes it.
type StartFunc func(done DoneFunc)

// task couples the work to run with its single-assignment result slot.
// A task is owned by its scope's queue until dispatched, and is never
// dispatched twice.
type task struct {
	start  StartFunc
	result *Result
}

// Scope is one admission controller view onto a shared pool. Each scope
// owns its own backlog; siblings created with Fork share the pool, so a
// permit released in one scope lets a queued task from another run.
type Scope struct {
	pool   *Pool
	id     int
	queue  *fifo
	closed atomic.Bool
}

// Pool returns the pool this scope draws permits from.
func (s *Scope) Pool() *Pool {
	return s.pool
}

// Fork creates a sibling scope sharing this scope's pool.
func (s *Scope) Fork() *Scope {
	return s.pool.Scope()
}

// Submit hands an operation to the controller and returns its completion
// handle. It never blocks: with a free permit the task is dispatched
// within the call (the operation itself still runs asynchronously),
// otherwise it joins the backlog.
func (s *Scope) Submit(start StartFunc) *Result {
	if s.closed.Load() {
		return Resolved(nil, ErrScopeClosed)
	}

	t := &task{start: start, result: newResult()}

	if s.pool.tryAcquire() {
		s.pool.dispatch(t)
		return t.result
	}

	s.queue.push(t)
	if s.pool.cfg.OnEnqueue != nil {
		s.pool.cfg.OnEnqueue()
	}

	// Close may have swept the queue between the closed check above and
	// the push, stranding this task where no drain will find it. A
	// second sweep here is safe: resolve is once-only, so whichever of
	// Close and this sweep reaches a task first wins.
	if s.closed.Load() {
		for _, q := range s.queue.drainAll() {
			q.result.resolve(nil, ErrScopeClosed)
		}
		return t.result
	}

	// A permit may have freed between the failed acquire and the push;
	// a drain pass closes that window.
	s.pool.drain()

	return t.result
}

// Close unregisters the scope from the pool. Tasks still queued here
// resolve with ErrScopeClosed; in-flight operations are unaffected and
// still release their permits. Close is idempotent.
func (s *Scope) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.pool.unregister(s.id)
	for _, t := range s.queue.drainAll() {
		t.result.resolve(nil, ErrScopeClosed)
	}
}
