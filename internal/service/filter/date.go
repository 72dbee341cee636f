package filter

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted date format (dd.MM.yyyy).
const DateLayout = "02.01.2006"

var ErrInvalidDate = errors.New("invalid date")

// ParseError reports a date string that does not match DateLayout.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse date %q (want dd.MM.yyyy): %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidDate
}

// ParseDate parses s as dd.MM.yyyy and returns midnight of that day in UTC.
// Parsing is strict: both day and month take two digits, and a day past the
// end of its month (31.02.2024) is an error rather than being clamped to the
// month's last day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return d, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func withinDays(t, start, end time.Time) bool {
	d := dateOf(t)
	return !d.Before(start) && !d.After(end)
}
