package command

import "fmt"

// PatternError is returned when a query pattern is not a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid query pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// OutputError is returned when query results cannot be written for any
// reason other than the reader going away.
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write query output: %v", e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
