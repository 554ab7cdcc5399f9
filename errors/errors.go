package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type for failures raised by seqkit itself.
// Errors produced by a sequence's source are never converted to AppError.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code, so the
// package sentinels can be matched with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is matching. Compare by code only.
var (
	ErrArgumentNull       = New(ErrCodeArgumentNull, "value cannot be nil")
	ErrArgumentOutOfRange = New(ErrCodeArgumentOutOfRange, "argument out of range")
	ErrDuplicateKey       = New(ErrCodeDuplicateKey, "duplicate key")
	ErrNoElements         = New(ErrCodeNoElements, "sequence contains no elements")
	ErrMoreThanOneElement = New(ErrCodeMoreThanOneElement, "sequence contains more than one element")
	ErrCanceled           = New(ErrCodeCanceled, "operation canceled")
	ErrPanic              = New(ErrCodePanic, "panic recovered")
)

// --- Constructors ---

// ArgumentNull creates an AppError for a nil argument.
func ArgumentNull(param string) *AppError {
	return &AppError{
		Code: ErrCodeArgumentNull, Message: fmt.Sprintf("%s cannot be nil", param),
		Details: map[string]any{"param": param},
	}
}

// ArgumentOutOfRange creates an AppError for an argument outside its valid range.
func ArgumentOutOfRange(param string, value any) *AppError {
	return &AppError{
		Code: ErrCodeArgumentOutOfRange, Message: fmt.Sprintf("%s is out of range (got: %v)", param, value),
		Details: map[string]any{"param": param, "value": value},
	}
}

// DuplicateKey creates an AppError for a key that was already added.
func DuplicateKey(key any) *AppError {
	return &AppError{
		Code: ErrCodeDuplicateKey, Message: fmt.Sprintf("an element with the same key has already been added (key: %v)", key),
		Details: map[string]any{"key": key},
	}
}

// NoElements creates an AppError for an empty sequence.
func NoElements() *AppError {
	return &AppError{Code: ErrCodeNoElements, Message: "sequence contains no elements"}
}

// MoreThanOneElement creates an AppError for a sequence with more than one element.
func MoreThanOneElement() *AppError {
	return &AppError{Code: ErrCodeMoreThanOneElement, Message: "sequence contains more than one element"}
}

// Canceled wraps a context error. errors.Is(err, context.Canceled) keeps working.
func Canceled(cause error) *AppError {
	return &AppError{Code: ErrCodeCanceled, Message: "operation canceled", Cause: cause}
}

// Recovered converts a recovered panic value into an AppError. A recovered
// error value becomes the cause.
func Recovered(value any) *AppError {
	e := &AppError{
		Code: ErrCodePanic, Message: fmt.Sprintf("panic: %v", value),
		Details: map[string]any{"panic": value},
	}
	if err, ok := value.(error); ok {
		e.Cause = err
	}
	return e
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// --- Helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsArgument reports whether err is an argument error (null, out of range, duplicate key).
func IsArgument(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && IsArgumentCode(appErr.Code)
}

// IsInvalidState reports whether err is a no-elements or more-than-one-element error.
func IsInvalidState(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && IsInvalidStateCode(appErr.Code)
}
