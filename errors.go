package authturso

import (
	"errors"
	"fmt"
)

// ErrEmptyUpdate is returned when an update is requested with no updatable
// fields left after excluding the key columns. No statement is issued.
var ErrEmptyUpdate = errors.New("update contains no fields to set")

// MalformedTimestampError reports a stored timestamp column whose value was
// present but could not be parsed.
type MalformedTimestampError struct {
	Column string
	Value  string
	Err    error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp in column %q: %q", e.Column, e.Value)
}

func (e *MalformedTimestampError) Unwrap() error {
	return e.Err
}
