package mapper

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// DefaultCutoff is the body size at which the JSON materializer stops
// buffering and switches to the streaming decode path.
const DefaultCutoff = 1024

// Options tunes a materializing handler. The zero value selects the
// default cutoff, the shared buffer pool, and no logging.
type Options struct {
	// Cutoff is the streaming cutoff in bytes. <= 0 means DefaultCutoff.
	Cutoff int
	// Pool supplies the byte accumulators for the buffered path.
	// Nil means the shared default pool.
	Pool *BufferPool
	// Log receives debug records about the chosen memory strategy.
	Log zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Cutoff <= 0 {
		o.Cutoff = DefaultCutoff
	}
	if o.Pool == nil {
		o.Pool = defaultBufferPool
	}
	return o
}

// JSON returns a factory for handlers that decode response bodies into
// *T. Bodies under the cutoff accumulate in a pooled buffer and decode
// inline on completion; larger or unknown-length bodies are piped to a
// background decode goroutine. An empty successful body yields a typed
// nil rather than an error, and a status >= 300 yields a *StatusError
// carrying the body text.
func JSON[T any](opts Options) Factory {
	opts = opts.withDefaults()
	return func() Handler {
		return &jsonHandler[T]{opts: opts}
	}
}

type jsonHandler[T any] struct {
	opts Options

	// buffering state
	buf        *bytes.Buffer
	totalBytes int
	chunks     int

	// streaming state, populated on the (at most one) switch
	streaming  bool
	pw         *io.PipeWriter
	decodeDone chan struct{}
	value      *T
	decodeErr  error

	// non-nil once an error status was seen
	cap *capture
}

func (m *jsonHandler[T]) OnStatus(code int, reason string) (Next, error) {
	// Don't try to parse error bodies, since they could be anything.
	if IsErrorStatus(code) {
		m.cap = newCapture(code, reason)
	}
	return Continue, nil
}

func (m *jsonHandler[T]) OnHeaders(http.Header) (Next, error) {
	return Continue, nil
}

func (m *jsonHandler[T]) OnBodyChunk(chunk []byte) (Next, error) {
	if m.cap != nil {
		m.cap.write(chunk)
		return Continue, nil
	}

	m.totalBytes += len(chunk)
	m.chunks++

	if !m.streaming && m.totalBytes >= m.opts.Cutoff {
		if err := m.switchToStreaming(); err != nil {
			return Abort, err
		}
	}

	if m.streaming {
		if _, err := m.pw.Write(chunk); err != nil {
			// The decode goroutine closed the read end early; the
			// outcome is already decided, so stop reading the body.
			return Abort, nil
		}
		return Continue, nil
	}

	if m.buf == nil {
		m.buf = m.opts.Pool.Get()
	}
	m.buf.Write(chunk)
	return Continue, nil
}

// switchToStreaming opens the pipe and decode goroutine, flushes the
// buffered prefix, and returns the buffer to the pool. Happens at most
// once per response.
func (m *jsonHandler[T]) switchToStreaming() error {
	pr, pw := io.Pipe()
	m.pw = pw
	m.decodeDone = make(chan struct{})

	go func() {
		defer close(m.decodeDone)

		var v T
		if err := json.NewDecoder(pr).Decode(&v); err != nil {
			m.decodeErr = err
			pr.CloseWithError(err)
			return
		}
		m.value = &v

		// Swallow any trailing bytes so a writer never blocks between a
		// completed decode and the pipe close.
		_, _ = io.Copy(io.Discard, pr)
	}()

	if m.buf != nil {
		if _, err := pw.Write(m.buf.Bytes()); err != nil {
			m.opts.Pool.Put(m.buf)
			m.buf = nil
			m.streaming = true
			return nil
		}
		// The pipe copied the bytes out, so the buffer is reusable.
		m.opts.Pool.Put(m.buf)
		m.buf = nil
	}

	m.streaming = true
	return nil
}

func (m *jsonHandler[T]) OnComplete() (any, error) {
	if m.cap != nil {
		return nil, m.cap.err()
	}

	if m.streaming {
		m.opts.Log.Debug().
			Int("bytes", m.totalBytes).
			Int("chunks", m.chunks).
			Msg("streamed response")

		m.pw.Close()
		<-m.decodeDone
		if m.decodeErr != nil {
			return nil, &DecodeError{m.decodeErr}
		}
		return m.value, nil
	}

	m.opts.Log.Debug().
		Int("bytes", m.totalBytes).
		Int("chunks", m.chunks).
		Msg("buffered response")

	defer func() {
		m.opts.Pool.Put(m.buf)
		m.buf = nil
	}()

	if m.totalBytes == 0 {
		return (*T)(nil), nil
	}

	var v T
	if err := json.Unmarshal(m.buf.Bytes(), &v); err != nil {
		return nil, &DecodeError{err}
	}
	return &v, nil
}

func (m *jsonHandler[T]) OnError(err error) {
	if m.buf != nil {
		m.opts.Pool.Put(m.buf)
		m.buf = nil
	}
	if m.pw != nil {
		// Unblocks the decode goroutine; it exits on its own.
		m.pw.CloseWithError(err)
	}
}
