// Package apperror defines the coded errors repo2file reports to the invoker.
package apperror

import (
	"errors"
	"fmt"
	"time"
)

// Error is a failure annotated with a code, the path it concerns and its cause.
type Error struct {
	Code      Code
	Message   string
	Path      string
	Cause     error
	Timestamp time.Time
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%d] %s", e.Code, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind reports the category of the error's code.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New creates an Error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap annotates err with a code and message.
func Wrap(err error, code Code, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Cause:     err,
		Timestamp: time.Now(),
	}
}

// WithPath returns a copy of e that names the offending path.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target.Code, true
	}
	return 0, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	code, ok := CodeOf(err)
	return ok && code.Kind() == kind
}
