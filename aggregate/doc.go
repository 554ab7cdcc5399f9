// Package aggregate provides terminal operators over pull sequences: emptiness,
// first, last, single, element-at, keyed materialization and extremum selection.
//
// Every function drains a pipeline.Source in one session and closes it
// before returning. Push sequences use the same functions through
// blocking.Enumerate:
//
//	byID, err := aggregate.ToDictionary(ctx, blocking.Enumerate(events), Event.ID)
//
// Every function checks ctx before each pull and fails with
// errors.ErrCanceled once it is done.
//
// Errors raised by the source are returned unchanged. Failures of the
// operator itself are errors.AppError values: ErrNoElements,
// ErrMoreThanOneElement, ErrDuplicateKey, ErrArgumentNull and
// ErrArgumentOutOfRange.
package aggregate
