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
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors, raised before anything touches the filesystem
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigValid      ErrorCode = "CONFIG_INVALID"
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"

	// Missing-resource errors, raised at the point of use
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"
	ErrLauncherNotFound ErrorCode = "LAUNCHER_NOT_FOUND"
	ErrRuntimeNotFound  ErrorCode = "RUNTIME_NOT_FOUND"
	ErrBundleNotFound   ErrorCode = "BUNDLE_NOT_FOUND"
	ErrBundleInvalid    ErrorCode = "BUNDLE_INVALID"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileExists    ErrorCode = "FILE_EXISTS"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Pipeline and external tool errors
	ErrOperationInvalid ErrorCode = "OPERATION_INVALID"
	ErrToolExecute      ErrorCode = "TOOL_EXECUTE"
	ErrPlistInvalid     ErrorCode = "PLIST_INVALID"
	ErrPublish          ErrorCode = "PUBLISH"
)

// BundlerError represents a structured error with code and details
type BundlerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BundlerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BundlerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BundlerError) Is(target error) bool {
	var targetErr *BundlerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BundlerError with the given code and message
func New(code ErrorCode, message string) *BundlerError {
	return &BundlerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BundlerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BundlerError {
	return &BundlerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BundlerError
func Wrap(err error, code ErrorCode, message string) *BundlerError {
	if err == nil {
		return nil
	}
	return &BundlerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BundlerError {
	if err == nil {
		return nil
	}
	return &BundlerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BundlerError) WithDetail(key string, value interface{}) *BundlerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BundlerError) WithDetails(details map[string]interface{}) *BundlerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bundlerErr *BundlerError
	if errors.As(err, &bundlerErr) {
		return bundlerErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BundlerError
func GetErrorCode(err error) ErrorCode {
	var bundlerErr *BundlerError
	if errors.As(err, &bundlerErr) {
		return bundlerErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BundlerError
func GetErrorDetails(err error) map[string]interface{} {
	var bundlerErr *BundlerError
	if errors.As(err, &bundlerErr) {
		return bundlerErr.Details
	}
	return nil
}

// IsConfiguration reports whether err belongs to the configuration category,
// i.e. it was detected before any side effect took place.
func IsConfiguration(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrTemplateNotFound:
		return true
	}
	return false
}

// IsMissingResource reports whether err signals a declared file or directory
// that was not found where it was expected.
func IsMissingResource(err error) bool {
	switch GetErrorCode(err) {
	case ErrFileNotFound, ErrLauncherNotFound, ErrRuntimeNotFound, ErrBundleNotFound:
		return true
	}
	return false
}
