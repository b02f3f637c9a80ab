// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package errs provides the coded error type of llstack, which contains errcode errmsg.
package errs

import (
	"errors"
	"fmt"
	"io"
)

// RetCode is the return code of a scenario run.
type RetCode int

// llstack return code.
const (
	// RetOK means success.
	RetOK RetCode = 0
	// RetDecodeFail means a scenario could not be decoded.
	RetDecodeFail RetCode = 1
	// RetInvalidStep means a scenario step is malformed: unknown op, bad value or missing field.
	RetInvalidStep RetCode = 2
	// RetMismatch means a step ran but its expectation did not hold.
	RetMismatch RetCode = 3
	// RetReadFail means the scenario file could not be read.
	RetReadFail RetCode = 4

	// RetUnknown is the error code for unspecified errors.
	RetUnknown RetCode = 999
)

const (
	// Success is the success prompt string.
	Success = "success"
)

// Error is the error code structure which contains error code and error message.
type Error struct {
	Code RetCode
	Msg  string

	cause error      // internal error, form the error chain.
	stack stackTrace // call stack, if the error chain already has a stack, it will not be set.
}

// Error implements the error interface and returns the error description.
func (e *Error) Error() string {
	if e == nil {
		return Success
	}
	if e.cause != nil {
		return fmt.Sprintf("code:%d, msg:%s, caused by %s", e.Code, e.Msg, e.cause.Error())
	}
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Msg)
}

// Format implements the fmt.Formatter interface.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "code:%d, msg:%s", e.Code, e.Msg)
			if e.stack != nil {
				e.stack.Format(s, verb)
			}
			if e.cause != nil {
				_, _ = fmt.Fprintf(s, "\nCause by %+v", e.cause)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errs.Error=%s)", verb, e.Error())
	}
}

// Unwrap support Go 1.13+ error chains.
func (e *Error) Unwrap() error { return e.cause }

// New creates an error.
func New(code RetCode, msg string) error {
	err := &Error{Code: code, Msg: msg}
	if traceable {
		err.stack = callers()
	}
	return err
}

// Newf creates an error, msg supports format strings.
func Newf(code RetCode, format string, params ...interface{}) error {
	err := &Error{Code: code, Msg: fmt.Sprintf(format, params...)}
	if traceable {
		err.stack = callers()
	}
	return err
}

// Wrap creates a new error contains input error.
// The stack is only captured when the chain does not hold an Error yet.
func Wrap(err error, code RetCode, msg string) error {
	if err == nil {
		return nil
	}
	wrapErr := &Error{Code: code, Msg: msg, cause: err}
	var e *Error
	if traceable && !errors.As(err, &e) {
		wrapErr.stack = callers()
	}
	return wrapErr
}

// Wrapf the same as Wrap, msg supports format strings.
func Wrapf(err error, code RetCode, format string, params ...interface{}) error {
	if err == nil {
		return nil
	}
	wrapErr := &Error{Code: code, Msg: fmt.Sprintf(format, params...), cause: err}
	var e *Error
	if traceable && !errors.As(err, &e) {
		wrapErr.stack = callers()
	}
	return wrapErr
}

// Code gets the error code through error.
func Code(e error) RetCode {
	if e == nil {
		return RetOK
	}
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return RetUnknown
	}
	if err == nil {
		return RetOK
	}
	return err.Code
}

// Msg gets error msg through error.
func Msg(e error) string {
	if e == nil {
		return Success
	}
	err, ok := e.(*Error)
	if !ok && !errors.As(e, &err) {
		return e.Error()
	}
	if err == (*Error)(nil) {
		return Success
	}
	if err.Unwrap() != nil {
		return err.Error()
	}
	return err.Msg
}
