// Package errs provides types and support related to web error
// functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// Error represents an error in the system.
type Error struct {
	Code     ErrCode `json:"code"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New constructs an error based on an app error.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Newf constructs an error based on an error message.
func Newf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	type response struct {
		Error string `json:"error"`
	}

	data, err := json.Marshal(response{Error: e.Message})
	return data, "application/json", err
}

// HTTPStatus implements the web httpStatus interface so the error code is
// used as the response status.
func (e *Error) HTTPStatus() int {
	return httpStatus[e.Code]
}

// IsError tests whether the given error is an app Error.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the app Error inside the given error.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return &Error{}
	}
	return er
}

// =============================================================================

// ErrCode represents a coded error category.
type ErrCode int

const (
	OK ErrCode = iota
	InvalidArgument
	NotFound
	Unauthenticated
	Internal
	InternalOnlyLog
	FailedPrecondition
	Unavailable
)

var codeNames = map[ErrCode]string{
	OK:                 "ok",
	InvalidArgument:    "invalid_argument",
	NotFound:           "not_found",
	Unauthenticated:    "unauthenticated",
	Internal:           "internal",
	InternalOnlyLog:    "internal",
	FailedPrecondition: "failed_precondition",
	Unavailable:        "unavailable",
}

var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	InvalidArgument:    http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	Unauthenticated:    http.StatusUnauthorized,
	Internal:           http.StatusInternalServerError,
	InternalOnlyLog:    http.StatusInternalServerError,
	FailedPrecondition: http.StatusPreconditionFailed,
	Unavailable:        http.StatusServiceUnavailable,
}

// String returns the name of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// MarshalText implements encoding.TextMarshaler.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}
