package mapper

import "strings"

// capture accumulates the body of a failed response as text. The body
// could be anything, so no decoding is attempted.
type capture struct {
	code   int
	reason string
	body   strings.Builder
}

func newCapture(code int, reason string) *capture {
	return &capture{code: code, reason: reason}
}

func (c *capture) write(chunk []byte) {
	c.body.Write(chunk)
}

func (c *capture) err() *StatusError {
	return &StatusError{Code: c.code, Reason: c.reason, Body: c.body.String()}
}
