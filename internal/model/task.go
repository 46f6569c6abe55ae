package model

import (
	"fmt"

	"github.com/vk/ganttgen/internal/calendar"
)

// Priority is one of the five task priority levels. Normal is the default
// and is represented by the absence of a priority attribute on the wire.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLowest
	PriorityLow
	PriorityHigh
	PriorityHighest
)

func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityLowest:
		return "lowest"
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// ParsePriority accepts the lowercase level names used in project files.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "", "normal":
		return PriorityNormal, nil
	case "lowest":
		return PriorityLowest, nil
	case "low":
		return PriorityLow, nil
	case "high":
		return PriorityHigh, nil
	case "highest":
		return PriorityHighest, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// Task is a project task, milestone, or summary node in the ownership tree.
//
// Start and End are filled by the scheduler; End is exclusive, the first
// working day on which the task no longer runs, so a 3-day task starting
// Monday occupies Mon/Tue/Wed and has End on Thursday. An explicit Start set
// before scheduling acts as an earliest-start bound, or as a fixed date when
// Pinned is set.
type Task struct {
	ID        int
	UID       string
	Name      string
	Duration  int // working days; 0 for milestones, derived for summaries
	Start     *calendar.Date
	End       *calendar.Date
	Pinned    bool
	Milestone bool
	Progress  int // 0..100
	Priority  Priority
	Parent    *int // owning task id, nil for roots

	Color   string
	Notes   string
	WebLink string
	Shape   string
	Expand  bool

	// Cost is either calculated from allocations (the zero state: CostIsManual
	// false, ManualCost nil) or a manual value (CostIsManual true, ManualCost
	// set). Any other pairing is a validation error.
	CostIsManual bool
	ManualCost   *float64

	// Properties maps custom property definition ids to typed values.
	Properties map[string]PropertyValue
}

// Finish returns the last working day the task occupies. For milestones it
// equals the start date.
func (t *Task) Finish(w calendar.WorkWeek) (calendar.Date, error) {
	if t.Start == nil || t.End == nil {
		return calendar.Date{}, fmt.Errorf("task %d has no resolved dates", t.ID)
	}
	if t.Duration == 0 {
		return *t.Start, nil
	}
	return calendar.SubtractWorkingDays(*t.End, 1, w)
}
