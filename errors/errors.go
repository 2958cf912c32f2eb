// Package errors 提供带错误代码的统一错误类型
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCode 错误代码类型
type ErrorCode string

// 预定义错误代码
const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"

	// 事件总线错误代码
	ErrCodeBusClosed    ErrorCode = "BUS_CLOSED"
	ErrCodePublish      ErrorCode = "PUBLISH_ERROR"
	ErrCodeSubscription ErrorCode = "SUBSCRIPTION_ERROR"
)

// Error 应用错误实现
// 同一错误代码的两个错误在 errors.Is 语义下视为相等
type Error struct {
	code    ErrorCode
	message string
	cause   error
}

// New 创建新错误
func New(code ErrorCode, message string) *Error {
	return &Error{
		code:    code,
		message: message,
	}
}

// Newf 创建带格式化消息的新错误
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装错误；err 为 nil 时返回 nil
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		code:    code,
		message: message,
		cause:   err,
	}
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code 获取错误代码
func (e *Error) Code() ErrorCode {
	return e.code
}

// Message 获取错误消息
func (e *Error) Message() string {
	return e.message
}

// Unwrap 解包错误（支持 errors.Unwrap）
func (e *Error) Unwrap() error {
	return e.cause
}

// Is 检查是否为指定类型的错误
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if appErr, ok := target.(*Error); ok {
		return e.code == appErr.code
	}

	if e.cause != nil {
		return stdErrors.Is(e.cause, target)
	}

	return false
}

// IsCode 检查是否为指定错误代码
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	var appErr *Error
	if stdErrors.As(err, &appErr) {
		return appErr.code == code
	}

	return false
}

// CodeOf 获取错误代码；非本包错误返回 ErrCodeInternal
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var appErr *Error
	if stdErrors.As(err, &appErr) {
		return appErr.code
	}

	return ErrCodeInternal
}
