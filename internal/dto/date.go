package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly is a calendar date without a time component, marshalled as
// "YYYY-MM-DD". Borrow and return dates are dates, not instants.
type DateOnly time.Time

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	*d = DateOnly(t)
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d DateOnly) String() string {
	return time.Time(d).Format(dateLayout)
}

// Time returns the underlying time.Time.
func (d DateOnly) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date is unset.
func (d DateOnly) IsZero() bool {
	return time.Time(d).IsZero()
}

// NewDateOnly truncates t to its calendar date.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// NewDateOnlyPtr converts an optional time into an optional date.
func NewDateOnlyPtr(t *time.Time) *DateOnly {
	if t == nil {
		return nil
	}
	d := NewDateOnly(*t)
	return &d
}
