// Package errors provides the error taxonomy shared by seqkit packages.
//
// Errors raised by seqkit are *AppError values carrying an ErrorCode:
//
//   - argument errors (ARGUMENT_NULL, ARGUMENT_OUT_OF_RANGE, DUPLICATE_KEY) are
//     returned before any subscription or iteration starts;
//   - invalid-state errors (NO_ELEMENTS, MORE_THAN_ONE_ELEMENT) are returned
//     after a blocking operation resolved;
//   - CANCELED wraps the caller's context error;
//   - PANIC_RECOVERED carries a panic raised by a producer or a callback.
//
// Errors produced by a source are returned verbatim, never wrapped.
//
// # Matching
//
//	if errors.Is(err, seqerrors.ErrNoElements) { ... }
//	if seqerrors.IsArgument(err) { ... }
package errors
