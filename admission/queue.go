package admission

import "sync"

// fifo is an unbounded first-in-first-out task queue, safe for
// concurrent producers and consumers. Insertion order is dispatch order.
type fifo struct {
	mu    sync.Mutex
	head  int
	items []*task
}

func (q *fifo) push(t *task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()
}

func (q *fifo) pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return nil, false
	}

	t := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}

	return t, true
}

func (q *fifo) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// drainAll removes and returns every queued task.
func (q *fifo) drainAll() []*task {
	q.mu.Lock()
	defer q.mu.Unlock()

	rest := q.items[q.head:]
	out := make([]*task, len(rest))
	copy(out, rest)
	q.items = nil
	q.head = 0
	return out
}
