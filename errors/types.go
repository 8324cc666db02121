package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Repository identity errors
	ErrCodeIdentityMissing ErrorCode = "IDENTITY_MISSING"
	ErrCodeTokenUnset      ErrorCode = "TOKEN_UNSET"

	// CI document errors
	ErrCodeDocInvalid   ErrorCode = "DOC_INVALID"
	ErrCodeDocUnparsed  ErrorCode = "DOC_UNPARSED"
	ErrCodeEditAborted  ErrorCode = "EDIT_ABORTED"
	ErrCodeEditorFailed ErrorCode = "EDITOR_FAILED"

	// Webhook API errors
	ErrCodeHookAPI      ErrorCode = "HOOK_API"
	ErrCodeHookNotFound ErrorCode = "HOOK_NOT_FOUND"

	// Command execution errors
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"

	// Git errors
	ErrCodeGitNotInstalled ErrorCode = "GIT_NOT_INSTALLED"
	ErrCodeGitNoRemote     ErrorCode = "GIT_NO_REMOTE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// TravisError represents a structured error with context
type TravisError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *TravisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TravisError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *TravisError) WithDetail(key string, value interface{}) *TravisError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *TravisError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new TravisError
func New(code ErrorCode, message string) *TravisError {
	return &TravisError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a TravisError
func Wrap(err error, code ErrorCode, message string) *TravisError {
	return &TravisError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific TravisError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	travisErr, ok := err.(*TravisError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return travisErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	travisErr, ok := err.(*TravisError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return travisErr.Code
}
