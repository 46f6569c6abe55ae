// Package calendar implements business-day date arithmetic over a
// configurable work week.
package calendar

import (
	"errors"
	"fmt"
)

// MaxSpanDays bounds any single working-day computation to roughly a
// century of calendar days, so malformed extreme durations cannot iterate
// unboundedly.
const MaxSpanDays = 36600

// ErrSpanExceeded is returned when a working-day computation would walk
// further than MaxSpanDays calendar days.
var ErrSpanExceeded = errors.New("working-day span exceeds maximum project span")

// AddWorkingDays advances d by n working-day steps, skipping days marked
// non-working in w. n=0 returns d unchanged; a negative n retreats instead.
func AddWorkingDays(d Date, n int, w WorkWeek) (Date, error) {
	if err := w.Validate(); err != nil {
		return Date{}, err
	}
	if n < 0 {
		return SubtractWorkingDays(d, -n, w)
	}
	steps := 0
	for consumed := 0; consumed < n; {
		d = d.Next()
		if steps++; steps > MaxSpanDays {
			return Date{}, fmt.Errorf("advancing %d working days from %s: %w", n, d, ErrSpanExceeded)
		}
		if w.IsWorking(d) {
			consumed++
		}
	}
	return d, nil
}

// SubtractWorkingDays retreats d by n working-day steps, skipping
// non-working days. n=0 returns d unchanged; a negative n advances instead.
func SubtractWorkingDays(d Date, n int, w WorkWeek) (Date, error) {
	if err := w.Validate(); err != nil {
		return Date{}, err
	}
	if n < 0 {
		return AddWorkingDays(d, -n, w)
	}
	steps := 0
	for consumed := 0; consumed < n; {
		d = d.Prev()
		if steps++; steps > MaxSpanDays {
			return Date{}, fmt.Errorf("retreating %d working days from %s: %w", n, d, ErrSpanExceeded)
		}
		if w.IsWorking(d) {
			consumed++
		}
	}
	return d, nil
}

// NextWorkingDay returns d itself when it falls on a working day, otherwise
// the first working day after it.
func NextWorkingDay(d Date, w WorkWeek) (Date, error) {
	if err := w.Validate(); err != nil {
		return Date{}, err
	}
	steps := 0
	for !w.IsWorking(d) {
		d = d.Next()
		if steps++; steps > MaxSpanDays {
			return Date{}, ErrSpanExceeded
		}
	}
	return d, nil
}

// WorkingDaysBetween counts the working days in the half-open interval
// [from, to). It returns 0 when to is not after from.
func WorkingDaysBetween(from, to Date, w WorkWeek) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	count := 0
	steps := 0
	for d := from; d.Before(to); d = d.Next() {
		if steps++; steps > MaxSpanDays {
			return 0, ErrSpanExceeded
		}
		if w.IsWorking(d) {
			count++
		}
	}
	return count, nil
}

// Latest returns the later of two dates.
func Latest(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}
