package client

import (
	"errors"
	"fmt"

	"github.com/kbukum/httpflow/mapper"
)

// ErrorCode classifies client errors.
type ErrorCode int

const (
	// ErrCodeConfig indicates an invalid configuration, surfaced at
	// configuration time and never retried.
	ErrCodeConfig ErrorCode = iota
	// ErrCodeInvalidStatus indicates a response status >= 300; the
	// error carries the status and captured body text.
	ErrCodeInvalidStatus
	// ErrCodeDecode indicates a body that did not match the expected
	// structure.
	ErrCodeDecode
	// ErrCodeTransport indicates a connection-level failure, propagated
	// unchanged from the underlying transport.
	ErrCodeTransport
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConfig:
		return "config"
	case ErrCodeInvalidStatus:
		return "invalid_status"
	case ErrCodeDecode:
		return "decode"
	case ErrCodeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 unless Code is
	// ErrCodeInvalidStatus).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the captured response body text (invalid-status only).
	Body string
	// Retryable indicates whether a higher retry layer may reasonably
	// retry the operation. The client itself never retries.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpflow: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpflow: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string) *Error {
	return &Error{Code: ErrCodeConfig, Message: msg}
}

// NewInvalidStatusError creates an error from a failed response status.
func NewInvalidStatusError(se *mapper.StatusError, url string) *Error {
	return &Error{
		StatusCode: se.Code,
		Code:       ErrCodeInvalidStatus,
		Message:    fmt.Sprintf("invalid response status from %s: %s", url, se.Body),
		Body:       se.Body,
		Retryable:  se.Code >= 500,
		Err:        se,
	}
}

// NewDecodeError creates a decode error.
func NewDecodeError(err error) *Error {
	return &Error{
		Code:    ErrCodeDecode,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTransportError creates a transport error.
func NewTransportError(err error) *Error {
	return &Error{
		Code:      ErrCodeTransport,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// classify converts a materializer outcome into a typed client error.
func classify(err error, url string) error {
	var already *Error
	if errors.As(err, &already) {
		return err
	}

	var se *mapper.StatusError
	if errors.As(err, &se) {
		return NewInvalidStatusError(se, url)
	}

	var de *mapper.DecodeError
	if errors.As(err, &de) {
		return NewDecodeError(de.Err)
	}

	return NewTransportError(err)
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConfig
}

// IsInvalidStatus checks if an error is an invalid-status error.
func IsInvalidStatus(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidStatus
}

// IsDecode checks if an error is a decode error.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDecode
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTransport
}

// IsRetryable checks if an error may be retried by a higher layer.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode extracts the HTTP status from an invalid-status error, or
// 0 when the error carries none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
