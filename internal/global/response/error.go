package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is the error type every handler reports through Fail. Code doubles
// as the HTTP status: Code/100 is written as the status line.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin,omitempty"`

	cause error
	stack pkgerrors.StackTrace
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode satisfies sentry.CodedError.
func (e *Error) GetCode() int32 {
	return e.Code
}

// Status is the HTTP status the error is written with.
func (e *Error) Status() int {
	status := int(e.Code / 100)
	if status < 100 || status > 599 {
		return 500
	}
	return status
}

// Server reports whether the error is a 5xx.
func (e *Error) Server() bool {
	return e.Status() >= 500
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is matches on Code so that errors derived with WithOrigin or WithTips
// still compare equal to the sentinel they came from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin attaches the underlying error. The origin text is only sent to
// clients in debug mode.
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	out := &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", err),
		cause:   err,
	}
	if st, ok := err.(stackTracer); ok {
		out.stack = st.StackTrace()
	}
	return out
}

// WithTips replaces the message shown to the client. 5xx errors ignore it
// so upstream details never reach the response body.
func (e *Error) WithTips(msg string) *Error {
	if e.Server() {
		msg = e.Message
	}
	return &Error{
		Code:    e.Code,
		Message: msg,
		Origin:  e.Origin,
		cause:   e.cause,
		stack:   e.stack,
	}
}

// AsError converts any error into an *Error, wrapping unknown errors as
// ErrServerInternal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrServerInternal.WithOrigin(err)
}
