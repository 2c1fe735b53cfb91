package mapper

import "net/http"

// Void returns a factory for handlers that expect no useful body. On a
// success status the body read is aborted immediately; on an error
// status the body is captured as text, since it may be the only clue to
// what went wrong.
func Void() Factory {
	return func() Handler { return &voidHandler{} }
}

type voidHandler struct {
	cap *capture
}

func (m *voidHandler) OnStatus(code int, reason string) (Next, error) {
	if IsErrorStatus(code) {
		m.cap = newCapture(code, reason)
		return Continue, nil
	}
	return Abort, nil
}

func (m *voidHandler) OnHeaders(http.Header) (Next, error) {
	return Continue, nil
}

func (m *voidHandler) OnBodyChunk(chunk []byte) (Next, error) {
	if m.cap != nil {
		m.cap.write(chunk)
	}
	return Continue, nil
}

func (m *voidHandler) OnComplete() (any, error) {
	if m.cap != nil {
		return nil, m.cap.err()
	}
	return nil, nil
}

func (m *voidHandler) OnError(error) {}
