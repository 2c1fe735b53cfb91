package mapper

import (
	"bytes"
	"sync"
)

// defaultMaxRetain is the largest buffer capacity the default pool will
// keep. Buffers grown past this are dropped on return so one huge
// response cannot pin memory for the lifetime of the pool.
const defaultMaxRetain = 64 << 10

// BufferPool hands out reusable byte accumulators for the buffered
// decode path. Entries are anonymous and interchangeable; a buffer is
// checked out by at most one handler at a time and reset on return.
type BufferPool struct {
	maxRetain int
	pool      sync.Pool
}

// NewBufferPool creates a pool that retains buffers up to maxRetain
// bytes of capacity. maxRetain <= 0 selects the default cap.
func NewBufferPool(maxRetain int) *BufferPool {
	if maxRetain <= 0 {
		maxRetain = defaultMaxRetain
	}
	return &BufferPool{
		maxRetain: maxRetain,
		pool: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

// Get checks out an empty buffer.
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put returns a buffer to the pool. Oversized buffers are dropped.
// Put(nil) is a no-op.
func (p *BufferPool) Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > p.maxRetain {
		return
	}
	b.Reset()
	p.pool.Put(b)
}

var defaultBufferPool = NewBufferPool(defaultMaxRetain)

// DefaultBufferPool returns the pool shared by handlers that were not
// given their own.
func DefaultBufferPool() *BufferPool {
	return defaultBufferPool
}
