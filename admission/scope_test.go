package admission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestScope_CloseFailsQueuedTasks(t *testing.T) {
	pool, _ := NewPool(1)
	scope := pool.Scope()

	gate := make(chan struct{})
	running := scope.Submit(func(done DoneFunc) {
		go func() {
			<-gate
			done("finished", nil)
		}()
	})

	queued := scope.Submit(sleeper(time.Millisecond))

	scope.Close()

	if _, err := queued.Wait(context.Background()); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("expected ErrScopeClosed for queued task, got %v", err)
	}

	// The in-flight operation is unaffected and still releases its permit.
	close(gate)
	v, err := running.Wait(context.Background())
	if err != nil || v != "finished" {
		t.Errorf("expected in-flight task to finish, got %v, %v", v, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pool.AwaitDrain(ctx); err != nil {
		t.Fatalf("pool did not drain after close: %v", err)
	}
}

func TestScope_SubmitAfterClose(t *testing.T) {
	pool, _ := NewPool(1)
	scope := pool.Scope()
	scope.Close()
	scope.Close() // idempotent

	res := scope.Submit(sleeper(time.Millisecond))
	if _, err := res.Wait(context.Background()); !errors.Is(err, ErrScopeClosed) {
		t.Errorf("expected ErrScopeClosed, got %v", err)
	}
}

func TestScope_CloseRacingSubmitResolvesAll(t *testing.T) {
	// Submit can pass its closed check, then lose the race to Close's
	// queue sweep before the push lands. Every handle must still
	// resolve, either normally or with ErrScopeClosed.
	for iter := 0; iter < 500; iter++ {
		pool, _ := NewPool(1)
		scope := pool.Scope()

		gate := make(chan struct{})
		blocker := scope.Submit(func(done DoneFunc) {
			go func() {
				<-gate
				done(nil, nil)
			}()
		})

		const submitters = 8
		results := make([]*Result, submitters)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < submitters; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				results[i] = scope.Submit(func(done DoneFunc) {
					go func() { done(nil, nil) }()
				})
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			scope.Close()
		}()

		close(start)
		wg.Wait()
		close(gate)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		for i, r := range results {
			if _, err := r.Wait(ctx); err != nil && !errors.Is(err, ErrScopeClosed) {
				t.Fatalf("iter %d: result %d stranded: %v", iter, i, err)
			}
		}
		if _, err := blocker.Wait(ctx); err != nil {
			t.Fatalf("iter %d: in-flight task broken by close: %v", iter, err)
		}
		cancel()
	}
}

func TestScope_ForkSharesPool(t *testing.T) {
	pool, _ := NewPool(3)
	a := pool.Scope()
	b := a.Fork()

	if a.Pool() != b.Pool() {
		t.Fatal("forked scope should share the parent's pool")
	}
	if got := b.Pool().Capacity(); got != 3 {
		t.Errorf("expected capacity 3, got %d", got)
	}

	// Closing the fork must not tear down the sibling.
	b.Close()
	res := a.Submit(sleeper(time.Millisecond))
	if _, err := res.Wait(context.Background()); err != nil {
		t.Errorf("sibling scope broken after fork close: %v", err)
	}
}
