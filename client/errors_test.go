package client

import (
	"errors"
	"net"
	"testing"

	"github.com/kbukum/httpflow/mapper"
)

func TestClassify_StatusError(t *testing.T) {
	se := &mapper.StatusError{Code: 404, Reason: "Not Found", Body: "missing"}
	err := classify(se, "https://api.example.com/x")

	if !IsInvalidStatus(err) {
		t.Fatalf("IsInvalidStatus = false for %v", err)
	}
	if StatusCode(err) != 404 {
		t.Errorf("StatusCode = %d", StatusCode(err))
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatal("not a *client.Error")
	}
	if ce.Body != "missing" {
		t.Errorf("Body = %q", ce.Body)
	}
	if ce.Retryable {
		t.Error("4xx must not be retryable")
	}
	if !errors.Is(err, se) {
		t.Error("underlying StatusError not wrapped")
	}
}

func TestClassify_ServerStatusRetryable(t *testing.T) {
	err := classify(&mapper.StatusError{Code: 503}, "u")
	if !IsRetryable(err) {
		t.Errorf("5xx should be retryable: %v", err)
	}
}

func TestClassify_DecodeError(t *testing.T) {
	inner := errors.New("unexpected token")
	err := classify(&mapper.DecodeError{Err: inner}, "u")

	if !IsDecode(err) {
		t.Fatalf("IsDecode = false for %v", err)
	}
	if IsRetryable(err) {
		t.Error("decode errors must not be retryable")
	}
	if !errors.Is(err, inner) {
		t.Error("inner error not wrapped")
	}
}

func TestClassify_TransportError(t *testing.T) {
	inner := &net.OpError{Op: "dial", Err: errors.New("refused")}
	err := classify(inner, "u")

	if !IsTransport(err) {
		t.Fatalf("IsTransport = false for %v", err)
	}
	if !IsRetryable(err) {
		t.Error("transport errors should be retryable")
	}
}

func TestClassify_AlreadyClassified(t *testing.T) {
	orig := NewConfigError("bad setup")
	if got := classify(orig, "u"); got != orig {
		t.Errorf("reclassified an already-typed error: %v", got)
	}
}

func TestErrorString(t *testing.T) {
	e := NewInvalidStatusError(&mapper.StatusError{Code: 418, Body: "teapot"}, "https://x")
	msg := e.Error()
	if msg == "" || StatusCode(e) != 418 {
		t.Errorf("Error() = %q", msg)
	}
}

func TestStatusCode_NonClientError(t *testing.T) {
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode = %d, want 0", got)
	}
}
