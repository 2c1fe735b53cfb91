package mapper

import "net/http"

// Next tells the transport whether to keep delivering the response.
type Next int

const (
	// Continue keeps the response flowing.
	Continue Next = iota
	// Abort stops the body read; the transport closes the connection
	// body and calls OnComplete with whatever was delivered so far.
	Abort
)

// Handler consumes one response. Implementations are stateful and must
// not be shared across requests. Chunks passed to OnBodyChunk are only
// valid for the duration of the call; handlers that keep body bytes must
// copy them.
type Handler interface {
	// OnStatus is called once with the status line.
	OnStatus(code int, reason string) (Next, error)
	// OnHeaders is called once after OnStatus.
	OnHeaders(header http.Header) (Next, error)
	// OnBodyChunk is called zero or more times.
	OnBodyChunk(chunk []byte) (Next, error)
	// OnComplete is called once after the final chunk (or after Abort)
	// and yields the materialized value.
	OnComplete() (any, error)
	// OnError is called instead of OnComplete when the transport fails
	// mid-response, so held resources can be released.
	OnError(err error)
}

// Factory produces a fresh Handler for each request.
type Factory func() Handler
