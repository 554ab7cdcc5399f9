package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors. Raised synchronously, before any subscription is made.
const (
	// ErrCodeArgumentNull indicates a required argument (source, selector, comparator) was nil.
	ErrCodeArgumentNull ErrorCode = "ARGUMENT_NULL"
	// ErrCodeArgumentOutOfRange indicates an index or count outside the accepted range.
	ErrCodeArgumentOutOfRange ErrorCode = "ARGUMENT_OUT_OF_RANGE"
	// ErrCodeDuplicateKey indicates a key selector produced the same key twice.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"
	// ErrCodeInvalidInput indicates invalid configuration or input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Invalid-state errors. Raised after a blocking operation has resolved.
const (
	// ErrCodeNoElements indicates a sequence was empty where an element was required.
	ErrCodeNoElements ErrorCode = "NO_ELEMENTS"
	// ErrCodeMoreThanOneElement indicates Single observed a second element.
	ErrCodeMoreThanOneElement ErrorCode = "MORE_THAN_ONE_ELEMENT"
)

// Runtime errors
const (
	// ErrCodeCanceled indicates the caller's context ended before the operation resolved.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodePanic indicates a panic in a producer or callback was converted to an error.
	ErrCodePanic ErrorCode = "PANIC_RECOVERED"
)

var argumentCodes = map[ErrorCode]bool{
	ErrCodeArgumentNull:       true,
	ErrCodeArgumentOutOfRange: true,
	ErrCodeDuplicateKey:       true,
	ErrCodeInvalidInput:       true,
}

var invalidStateCodes = map[ErrorCode]bool{
	ErrCodeNoElements:         true,
	ErrCodeMoreThanOneElement: true,
}

// IsArgumentCode returns true if the code belongs to the argument error family.
func IsArgumentCode(code ErrorCode) bool {
	return argumentCodes[code]
}

// IsInvalidStateCode returns true if the code belongs to the invalid-state family.
func IsInvalidStateCode(code ErrorCode) bool {
	return invalidStateCodes[code]
}
