package mapper

import "net/http"

// Status returns a factory for handlers that yield only the numeric
// status code. The connection is dropped right after the status line.
func Status() Factory {
	return func() Handler { return &statusHandler{code: http.StatusInternalServerError} }
}

type statusHandler struct {
	code int
}

func (m *statusHandler) OnStatus(code int, _ string) (Next, error) {
	m.code = code
	return Abort, nil
}

func (m *statusHandler) OnHeaders(http.Header) (Next, error) {
	return Abort, nil
}

func (m *statusHandler) OnBodyChunk([]byte) (Next, error) {
	return Abort, nil
}

func (m *statusHandler) OnComplete() (any, error) {
	return m.code, nil
}

func (m *statusHandler) OnError(error) {}
