package apperr

import (
	"errors"
	"net/http"
)

// Error 统一业务错误（Code 直接使用 HTTP 状态码）
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error   { return &Error{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Code: http.StatusUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &Error{Code: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Error{Code: http.StatusConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// CodeOf 非 *Error 一律视为 500
func CodeOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}
