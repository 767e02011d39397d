package pretenddb

import (
	"errors"
	"fmt"
	"reflect"
)

// Error is a failed statement: a MySQL error number, a human-readable
// message, the query text and the underlying cause.
type Error struct {
	Code    ErrorCode
	Message string
	Query   string
	Err     error // wrapped underlying error (may be nil)
}

// Error renders the code, SQLSTATE, message and the query that failed.
func (e *Error) Error() string {
	msg := fmt.Sprintf("Error %d (%s): %s", int(e.Code), e.Code.SQLState(), e.Message)
	if e.Query != "" {
		msg += fmt.Sprintf(" [query: %s]", e.Query)
	}
	return msg
}

// Unwrap returns the wrapped error for use with errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches target. Two *Error values match when
// their Codes are equal.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) SQLState() string {
	return e.Code.SQLState()
}

// CauseChain lists every wrapped cause, outermost first, as "type: message".
func (e *Error) CauseChain() []string {
	var chain []string
	for err := e.Err; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, fmt.Sprintf("%s: %s", reflect.TypeOf(err), err.Error()))
	}
	return chain
}

// NewError creates a new *Error with the given code and message.
func NewError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Errorf creates a new *Error with the given code and a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCodeOf returns the ErrorCode of err: ER_OK for nil, the code from any
// *Error in the chain, or ER_UNKNOWN_ERROR for any other error.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ER_OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ER_UNKNOWN_ERROR
}

// IsErrorCode reports whether err carries the given error code.
func IsErrorCode(err error, code ErrorCode) bool {
	return ErrorCodeOf(err) == code
}
