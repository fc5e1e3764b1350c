package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIdentifier is returned when an identifier line does not
	// split into exactly <event_id>-<sequence> after the namespace slash.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrInvalidNumericField is returned when event_id or sequence is not an integer.
	ErrInvalidNumericField = errors.New("invalid numeric field")
)

// NumericFieldError describes which field of which record failed to parse.
type NumericFieldError struct {
	Field    string // "event_id" or "sequence"
	Value    string
	RecordID string
	Err      error
}

func (e *NumericFieldError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("%s: record %s: %s=%q: %v", ErrInvalidNumericField, id, e.Field, e.Value, e.Err)
}

func (e *NumericFieldError) Unwrap() []error {
	return []error{ErrInvalidNumericField, e.Err}
}
