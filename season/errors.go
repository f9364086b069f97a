package season

import "fmt"

// TransportError is returned when the schedule could not be fetched.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when the response does not match the race table shape.
// Index is -1 when the problem is not tied to a single race.
type DecodeError struct {
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode race table: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode race %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
