package calendar

import (
	"errors"
	"time"
)

// WorkWeek marks which days of a week are working days, indexed by
// time.Weekday (Sunday first). A week with no working day is unusable and
// is rejected by Validate.
type WorkWeek [7]bool

// StandardWeek returns the common Monday-to-Friday pattern.
func StandardWeek() WorkWeek {
	var w WorkWeek
	for day := time.Monday; day <= time.Friday; day++ {
		w[day] = true
	}
	return w
}

// ErrNoWorkingDays is returned when a work week marks every day non-working.
var ErrNoWorkingDays = errors.New("work week has no working days")

// Validate checks that at least one day of the week is a working day.
func (w WorkWeek) Validate() error {
	for _, working := range w {
		if working {
			return nil
		}
	}
	return ErrNoWorkingDays
}

// IsWorking reports whether the given date falls on a working day.
func (w WorkWeek) IsWorking(d Date) bool {
	return w[d.Weekday()]
}
