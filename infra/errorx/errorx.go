// Package errorx 带错误码的错误类型，errors.Is 按错误码匹配
package errorx

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"histoterm/infra/errorx/errCode"
)

type Error struct {
	Code  errCode.Code
	Msg   string
	cause error
}

// New 创建错误，cause 携带调用栈
func New(code errCode.Code, msg string) *Error {
	return &Error{Code: code, Msg: msg, cause: pkgerrors.New(msg)}
}

// Wrap 保留原始错误，并附加错误码
func Wrap(code errCode.Code, err error, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, cause: pkgerrors.Wrap(err, msg)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is 错误码相同即视为同一类错误
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Format %+v 时打印调用栈
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "[%s] %+v", e.Code, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// CodeOf 取出错误链上第一个错误码，非 errorx 错误返回 INVALID_VALUE
func CodeOf(err error) errCode.Code {
	if err == nil {
		return errCode.OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return errCode.INVALID_VALUE
}
