package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
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

	// Repository / site errors
	ErrInvalidRoot    ErrorCode = "INVALID_ROOT"
	ErrScanIncomplete ErrorCode = "SCAN_INCOMPLETE"

	// Link errors
	ErrLinkConflict ErrorCode = "LINK_CONFLICT"
	ErrLinkCreate   ErrorCode = "LINK_CREATE"

	// FileSystem errors
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrFileCopy  ErrorCode = "FILE_COPY"
)

// maxFrames bounds the captured call chain
const maxFrames = 32

// BuildError represents a structured error with code, details and the place it was raised
type BuildError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error

	pcs []uintptr
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BuildError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BuildError) Is(target error) bool {
	var targetErr *BuildError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Location returns the file and line where the error was constructed.
func (e *BuildError) Location() (file string, line int) {
	if len(e.pcs) == 0 {
		return "", 0
	}
	frame, _ := runtime.CallersFrames(e.pcs[:1]).Next()
	return frame.File, frame.Line
}

// StackTrace formats the captured call chain, innermost frame first, one frame per line.
func (e *BuildError) StackTrace() string {
	var b strings.Builder
	frames := runtime.CallersFrames(e.pcs)
	i := 0
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "#%d %s(%d): %s\n", i, frame.File, frame.Line, frame.Function)
			i++
		}
		if !more {
			break
		}
	}
	return b.String()
}

func newError(code ErrorCode, message string, wrapped error) *BuildError {
	pcs := make([]uintptr, maxFrames)
	// skip runtime.Callers, newError and the exported constructor
	n := runtime.Callers(3, pcs)
	return &BuildError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
		pcs:     pcs[:n],
	}
}

// New creates a new BuildError with the given code and message
func New(code ErrorCode, message string) *BuildError {
	return newError(code, message, nil)
}

// Newf creates a new BuildError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BuildError {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap wraps an existing error with a BuildError
func Wrap(err error, code ErrorCode, message string) *BuildError {
	if err == nil {
		return nil
	}
	return newError(code, message, err)
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BuildError {
	if err == nil {
		return nil
	}
	return newError(code, fmt.Sprintf(format, args...), err)
}

// WithDetail adds a detail to the error
func (e *BuildError) WithDetail(key string, value interface{}) *BuildError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *BuildError) WithDetails(details map[string]interface{}) *BuildError {
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
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BuildError
func GetErrorCode(err error) ErrorCode {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BuildError
func GetErrorDetails(err error) map[string]interface{} {
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return buildErr.Details
	}
	return nil
}
