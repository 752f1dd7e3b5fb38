// Package errs provides typed application errors that encode as HTTP responses.
package errs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode classifies an Error and selects its HTTP status.
type ErrCode struct {
	value string
}

func (c ErrCode) String() string {
	return c.value
}

// Supported error codes.
var (
	InvalidArgument = ErrCode{value: "invalid_argument"}
	NotFound        = ErrCode{value: "not_found"}
	Internal        = ErrCode{value: "internal"}
	// InternalOnlyLog marks errors whose message is logged but replaced with a
	// generic one before reaching the client.
	InternalOnlyLog = ErrCode{value: "internal_only_log"}
)

var httpStatus = map[ErrCode]int{
	InvalidArgument: http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	Internal:        http.StatusInternalServerError,
	InternalOnlyLog: http.StatusInternalServerError,
}

// Error is an application error carrying the call site that raised it.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"message"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
}

// New wraps err with code, recording the caller.
func New(code ErrCode, err error) *Error {
	return newError(code, err.Error())
}

// Newf formats a message for code, recording the caller.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

func newError(code ErrCode, msg string) *Error {
	pc, file, line, _ := runtime.Caller(2)
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return &Error{
		Code:     code,
		Message:  msg,
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", file, line),
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Encode implements web.Encoder.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: e.Code.String(), Message: e.Message})
	return data, "application/json", err
}

// HTTPStatus maps the error code to a status code.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
