package calendar

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time-of-day component. The zero
// value is not a meaningful date; use MustDate or ParseDate to construct one.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components, normalizing out-of-range
// values the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// MustDate is ParseDate for trusted literals; it panics on malformed input.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the date in ISO YYYY-MM-DD form.
func (d Date) String() string {
	return d.time().Format("2006-01-02")
}

// IsZero reports whether d is the uninitialized zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday returns the day of week for d.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return NewDate(d.Year, d.Month, d.Day+1)
}

// Prev returns the preceding calendar day.
func (d Date) Prev() Date {
	return NewDate(d.Year, d.Month, d.Day-1)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.time().Before(other.time())
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.time().After(other.time())
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
