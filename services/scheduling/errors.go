package scheduling

import "fmt"

// RangeError marks an invalid resolution request (bad dates, inverted or
// oversized range). It maps to a client error, never to "no availability".
type RangeError struct {
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rangeError: %s", e.Message)
}

func NewRangeError(format string, args ...any) error {
	return &RangeError{Message: fmt.Sprintf(format, args...)}
}
