package admission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidPermits is returned when a pool is configured with a
// capacity below one. Zero or negative capacity is a configuration
// error, never a runtime condition.
var ErrInvalidPermits = errors.New("admission: permits must be at least 1")

// drainInterval is how often AwaitDrain re-checks the in-flight count.
const drainInterval = 50 * time.Millisecond

// Config configures a Pool.
type Config struct {
	// Permits is the maximum number of concurrently running operations.
	// Must be at least 1.
	Permits int
	// OnAcquire is called after a permit is taken.
	OnAcquire func()
	// OnRelease is called after a permit is returned.
	OnRelease func()
	// OnEnqueue is called when a task is queued instead of dispatched.
	OnEnqueue func()
}

// Pool is a counting admission gate shared by one or more scopes.
// Capacity is immutable for the lifetime of the pool; narrowing the
// limit means creating a new pool.
type Pool struct {
	cfg Config
	sem chan struct{}

	mu     sync.Mutex
	scopes map[int]*Scope
	nextID int

	// drain coalescing: nested or concurrent drain calls set rerun and
	// return, keeping stack depth constant under sustained backlog.
	drainMu  sync.Mutex
	draining bool
	rerun    bool
}

// New creates a pool from a config.
func New(cfg Config) (*Pool, error) {
	if cfg.Permits < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPermits, cfg.Permits)
	}
	return &Pool{
		cfg:    cfg,
		sem:    make(chan struct{}, cfg.Permits),
		scopes: make(map[int]*Scope),
	}, nil
}

// NewPool creates a pool with the given capacity and no hooks.
func NewPool(permits int) (*Pool, error) {
	return New(Config{Permits: permits})
}

// Scope creates and registers a new scope drawing permits from this pool.
func (p *Pool) Scope() *Scope {
	s := &Scope{pool: p, queue: &fifo{}}

	p.mu.Lock()
	s.id = p.nextID
	p.nextID++
	p.scopes[s.id] = s
	p.mu.Unlock()

	return s
}

// Capacity returns the configured permit count.
func (p *Pool) Capacity() int {
	return cap(p.sem)
}

// InFlight returns the number of permits currently held.
func (p *Pool) InFlight() int {
	return len(p.sem)
}

// Available returns the number of free permits.
func (p *Pool) Available() int {
	return cap(p.sem) - len(p.sem)
}

// Backlog returns the total number of queued tasks across all scopes.
func (p *Pool) Backlog() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, s := range p.scopes {
		n += s.queue.len()
	}
	return n
}

// AwaitSlot blocks until at least one permit is free or the context is
// cancelled. It does not reserve the permit; this is a best-effort
// readiness signal and is inherently racy.
func (p *Pool) AwaitSlot(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		<-p.sem
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AwaitDrain blocks until no operations are in flight and no tasks are
// queued, or the context is cancelled. It polls at a fixed interval.
func (p *Pool) AwaitDrain(ctx context.Context) error {
	if p.idle() {
		return nil
	}

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if p.idle() {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Pool) idle() bool {
	return len(p.sem) == 0 && p.Backlog() == 0
}

func (p *Pool) tryAcquire() bool {
	if !p.tryAcquireRaw() {
		return false
	}
	if p.cfg.OnAcquire != nil {
		p.cfg.OnAcquire()
	}
	return true
}

// tryAcquireRaw takes a permit without firing OnAcquire. The drain loop
// uses it to probe the backlog; hooks only fire for admissions that
// carry a task.
func (p *Pool) tryAcquireRaw() bool {
	select {
	case p.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

func (p *Pool) release() {
	<-p.sem
	if p.cfg.OnRelease != nil {
		p.cfg.OnRelease()
	}
}

func (p *Pool) releaseRaw() {
	<-p.sem
}

// dispatch starts a task under an already-acquired permit. The permit is
// released exactly once: on completion, on panic, or both racing the
// same guard. Release is followed by a backlog drain so a freed permit
// is never left idle while work is queued.
func (p *Pool) dispatch(t *task) {
	var once sync.Once
	done := func(value any, err error) {
		once.Do(func() {
			p.release()
			p.drain()
			t.result.resolve(value, err)
		})
	}

	defer func() {
		if r := recover(); r != nil {
			done(nil, fmt.Errorf("admission: dispatch panicked: %v", r))
		}
	}()

	t.start(done)
}

// drain dispatches queued tasks while permits are free. It runs as an
// iterative loop; a drain triggered while another is in progress only
// flags a re-scan, so completion chains never grow the stack.
func (p *Pool) drain() {
	p.drainMu.Lock()
	if p.draining {
		p.rerun = true
		p.drainMu.Unlock()
		return
	}
	p.draining = true
	p.drainMu.Unlock()

	for {
		for p.tryAcquireRaw() {
			t, ok := p.next()
			if !ok {
				p.releaseRaw()
				break
			}
			if p.cfg.OnAcquire != nil {
				p.cfg.OnAcquire()
			}
			p.dispatch(t)
		}

		p.drainMu.Lock()
		if !p.rerun {
			p.draining = false
			p.drainMu.Unlock()
			return
		}
		p.rerun = false
		p.drainMu.Unlock()
	}
}

// next pops a queued task from any registered scope. Order across
// sibling scopes is unspecified; within one scope it is FIFO.
func (p *Pool) next() (*task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range p.scopes {
		if t, ok := s.queue.pop(); ok {
			return t, true
		}
	}
	return nil, false
}

func (p *Pool) unregister(id int) {
	p.mu.Lock()
	delete(p.scopes, id)
	p.mu.Unlock()
}
