package mapper

import (
	"bytes"
	"net/http"
)

// Response is the undecoded outcome of a request: status, headers, and
// body bytes, success or not.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code indicates success.
func (r *Response) IsSuccess() bool {
	return !IsErrorStatus(r.StatusCode)
}

// Raw returns a factory for handlers that yield the full *Response with
// no decoding and no status policy.
func Raw() Factory {
	return func() Handler { return &rawHandler{} }
}

type rawHandler struct {
	resp Response
	body bytes.Buffer
}

func (m *rawHandler) OnStatus(code int, _ string) (Next, error) {
	m.resp.StatusCode = code
	return Continue, nil
}

func (m *rawHandler) OnHeaders(header http.Header) (Next, error) {
	m.resp.Header = header.Clone()
	return Continue, nil
}

func (m *rawHandler) OnBodyChunk(chunk []byte) (Next, error) {
	m.body.Write(chunk)
	return Continue, nil
}

func (m *rawHandler) OnComplete() (any, error) {
	m.resp.Body = m.body.Bytes()
	return &m.resp, nil
}

func (m *rawHandler) OnError(error) {}
