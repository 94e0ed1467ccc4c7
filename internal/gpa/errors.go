package gpa

import "fmt"

// MalformedResponseError is returned when the response body is not a JSON array.
type MalformedResponseError struct {
	// the kind of JSON value found instead, or "invalid json"
	Kind string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: expected JSON array but got %s: %s", e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("malformed response: expected JSON array but got %s", e.Kind)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// RecordExtractionError describes an array element that was skipped, it is
// only ever reported, never returned from Extract.
type RecordExtractionError struct {
	Index  int
	Reason string
}

func (e *RecordExtractionError) Error() string {
	return fmt.Sprintf("extract course record %d: %s", e.Index, e.Reason)
}
