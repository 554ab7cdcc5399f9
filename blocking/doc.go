// Package blocking turns push sequences into blocking results and pull
// sequences.
//
// Extraction (First, Last, Single and their Where/OrDefault variants, Wait)
// subscribes, blocks the caller on a single-use Gate until the outcome is
// known and disposes the subscription before returning. ForEach drains a
// sequence through a callback.
//
// Bridges return a pipeline.Pipeline backed by a live subscription, with a
// policy for values pushed faster than they are pulled:
//
//	Enumerate   every value, in order (unbounded queue)
//	Latest      the newest unconsumed value; blocks while there is none
//	MostRecent  the newest value, repeatedly; never blocks
//	Next        only values pushed after the pull began
//	Collect     an accumulator of everything since the previous pull; never blocks
//
// Every blocking call takes a context. When it is done the subscription is
// disposed and an errors.ErrCanceled error wrapping ctx.Err() is returned.
// Errors raised by the source are returned unchanged.
package blocking
