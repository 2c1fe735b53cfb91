// Package mapper converts asynchronously delivered HTTP response bytes
// into typed values.
//
// A Handler receives the response lifecycle as callbacks: status, then
// headers, then zero or more body chunks, then completion. Handlers are
// stateful and single-use; a Factory produces a fresh one per request.
//
// The JSON materializer is adaptive: small bodies accumulate in a pooled
// buffer and decode inline on completion, while bodies crossing the
// streaming cutoff are piped to a background decode goroutine so large
// or chunked responses never need to be held in memory whole. Both paths
// produce identical values; the cutoff only trades memory for a
// goroutine and pipe.
//
// Non-success statuses (>= 300) short-circuit every decoding handler
// into error capture: the body is retained as text and the outcome is a
// *StatusError, whatever the decode target was.
package mapper
