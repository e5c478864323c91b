package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestNotFound     ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestParse        ErrorCode = "MANIFEST_PARSE"
	ErrManifestFieldMissing ErrorCode = "MANIFEST_FIELD_MISSING"
	ErrManifestFieldInvalid ErrorCode = "MANIFEST_FIELD_INVALID"

	// Repository errors
	ErrRepoNotFound ErrorCode = "REPO_NOT_FOUND"
	ErrRepoDirty    ErrorCode = "REPO_DIRTY"
	ErrRepoStatus   ErrorCode = "REPO_STATUS"

	// Build errors
	ErrBuildCanceled ErrorCode = "BUILD_CANCELED"
	ErrIO            ErrorCode = "IO"
	ErrArchiveWrite  ErrorCode = "ARCHIVE_WRITE"
)

// Detail keys shared by producers and the CLI
const (
	DetailField = "field"
	DetailPath  = "path"
	DetailPaths = "paths"
)

// CustomsError represents a structured error with code and details
type CustomsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CustomsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomsError) Unwrap() error {
	return e.Wrapped
}

// Is matches any CustomsError with the same code, so
// errors.Is(err, errors.New(ErrRepoDirty, "")) tests for a code
func (e *CustomsError) Is(target error) bool {
	t, ok := target.(*CustomsError)
	return ok && e.Code == t.Code
}

func build(code ErrorCode, message string, wrapped error) *CustomsError {
	return &CustomsError{Code: code, Message: message, Details: map[string]interface{}{}, Wrapped: wrapped}
}

// New returns an error with the given code
func New(code ErrorCode, message string) *CustomsError {
	return build(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CustomsError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *CustomsError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CustomsError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// WithDetail adds a detail to the error
func (e *CustomsError) WithDetail(key string, value interface{}) *CustomsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *CustomsError) WithDetails(details map[string]interface{}) *CustomsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// As returns the outermost CustomsError in err's chain
func As(err error) (*CustomsError, bool) {
	var ce *CustomsError
	ok := errors.As(err, &ce)
	return ce, ok
}

// IsErrorCode reports whether the outermost CustomsError in err has code
func IsErrorCode(err error, code ErrorCode) bool {
	ce, ok := As(err)
	return ok && ce.Code == code
}

// GetErrorCode returns the code of err, or ErrUnknown for foreign errors
func GetErrorCode(err error) ErrorCode {
	if ce, ok := As(err); ok {
		return ce.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of err, nil for foreign errors
func GetErrorDetails(err error) map[string]interface{} {
	if ce, ok := As(err); ok {
		return ce.Details
	}
	return nil
}

// Stage names the pipeline stage an error code belongs to. The CLI prefixes
// failure messages with it.
func Stage(code ErrorCode) string {
	switch code {
	case ErrManifestNotFound, ErrManifestParse, ErrManifestFieldMissing, ErrManifestFieldInvalid:
		return "manifest"
	case ErrRepoNotFound, ErrRepoDirty, ErrRepoStatus:
		return "repository"
	case ErrConfigLoad, ErrConfigParse:
		return "config"
	case ErrBuildCanceled:
		return "collision"
	case ErrIO, ErrArchiveWrite:
		return "archive"
	case ErrInvalidInput:
		return "input"
	default:
		return "build"
	}
}
