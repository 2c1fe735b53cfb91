package mapper

import (
	"net/http"
	"strings"
)

// String returns a factory for handlers that yield the whole body as a
// string with no parsing, whatever the status code.
func String() Factory {
	return func() Handler { return &stringHandler{} }
}

type stringHandler struct {
	body strings.Builder
}

func (m *stringHandler) OnStatus(int, string) (Next, error) {
	return Continue, nil
}

func (m *stringHandler) OnHeaders(http.Header) (Next, error) {
	return Continue, nil
}

func (m *stringHandler) OnBodyChunk(chunk []byte) (Next, error) {
	m.body.Write(chunk)
	return Continue, nil
}

func (m *stringHandler) OnComplete() (any, error) {
	return m.body.String(), nil
}

func (m *stringHandler) OnError(error) {}
