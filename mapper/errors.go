package mapper

import "fmt"

// StatusError is the outcome of a response whose status code indicated
// failure. The body, however it arrived, is retained as text for
// diagnostics.
type StatusError struct {
	// Code is the HTTP status code.
	Code int
	// Reason is the status line text, when the transport provided one.
	Reason string
	// Body is the captured response body.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid response status (%d): %s", e.Code, e.Body)
}

// DecodeError wraps a failure to turn body bytes into the target value.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsErrorStatus reports whether a status code short-circuits decoding
// handlers into error capture.
func IsErrorStatus(code int) bool {
	return code >= 300
}
