package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeInput        ErrorCode = "INPUT_ERROR"
	CodeVerification ErrorCode = "VERIFICATION_FAILED"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Context keys shared across the migration pipeline.
const (
	CtxPath    = "path"
	CtxCommand = "command"
	CtxStage   = "stage"
)

type MigrationError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *MigrationError) WithContext(key string, value interface{}) *MigrationError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *MigrationError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &MigrationError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &MigrationError{Code: code, Message: msg, Err: err}
}

// AddContext attaches a key/value pair to err, wrapping foreign errors.
func AddContext(err error, key string, value interface{}) error {
	var me *MigrationError
	if errors.As(err, &me) {
		me.WithContext(key, value)
		return me
	}
	return &MigrationError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]interface{}{key: value},
	}
}

// IsCode checks if an error carries a specific error code.
func IsCode(err error, code ErrorCode) bool {
	var me *MigrationError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
