package analysis

import "errors"

var (
	// ErrEmptyListing is returned when the listing text is empty or
	// whitespace-only. Rejected before any engine call.
	ErrEmptyListing = errors.New("listing text is empty")

	// ErrInvalidPreferences is returned for out-of-range preference
	// values. Rejected before any engine call.
	ErrInvalidPreferences = errors.New("invalid preference profile")

	// ErrEngine wraps transport or model failures from the external
	// call. Propagated as-is; retry policy belongs to the caller.
	ErrEngine = errors.New("analysis engine call failed")

	// ErrResponseParse means the engine output was not valid JSON at all.
	ErrResponseParse = errors.New("engine response is not valid JSON")

	// ErrResponseSchema means the output parsed as JSON but is missing
	// required fields or has wrong primitive types.
	ErrResponseSchema = errors.New("engine response violates result schema")
)
