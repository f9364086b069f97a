package calendar

import "fmt"

// TimeParseError is returned when a race's date and time cannot be combined into a start time.
type TimeParseError struct {
	Season string
	Round  string
	Value  string
	Err    error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("race %s/%s: cannot parse start %q: %v", e.Season, e.Round, e.Value, e.Err)
}

func (e *TimeParseError) Unwrap() error { return e.Err }

// WriteError is returned when the calendar file cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write calendar %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
