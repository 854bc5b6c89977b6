// ABOUTME: Typed resolver errors carrying a machine-readable code.
// ABOUTME: Codes map one-to-one onto API error extensions.
package fitness

import (
	"errors"
	"fmt"

	"github.com/harperreed/fittrack/internal/store"
)

// Code classifies a resolver failure.
type Code string

const (
	CodeBadUserInput Code = "BAD_USER_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInternal     Code = "INTERNAL_SERVER_ERROR"
)

// Error is returned by every Service operation that fails.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions exposes the code to API layers that attach error metadata.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Code)}
}

func badInput(format string, args ...any) *Error {
	return &Error{Code: CodeBadUserInput, Message: fmt.Sprintf(format, args...)}
}

func notFound(kind string) *Error {
	return &Error{Code: CodeNotFound, Message: kind + " not found"}
}

func internal(action string, err error) *Error {
	return &Error{Code: CodeInternal, Message: "failed to " + action, Err: err}
}

// storeErr maps a store failure onto the error taxonomy.
func storeErr(err error, kind, action string) *Error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(kind)
	}
	return internal(action, err)
}

// CodeOf returns the code carried by err, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return CodeInternal
}

// AsError converts any error into an *Error, wrapping foreign errors as internal.
func AsError(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return internal("complete request", err)
}
