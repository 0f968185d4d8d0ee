package schema

import "errors"

var (
	// ErrSchema is returned when a payload misses the minimum structure of a
	// record: it is not an object or it has no project identity.
	ErrSchema = errors.New("schema error")

	// ErrExtraction is returned when no JSON object can be recovered from
	// the extractor output.
	ErrExtraction = errors.New("extraction error")
)
