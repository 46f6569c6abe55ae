package scheduler

import (
	"errors"
	"fmt"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/model"
)

// ErrInfeasible marks a Strong relation constraint that cannot be
// satisfied without shrinking a task's duration below zero.
var ErrInfeasible = errors.New("infeasible schedule")

// InfeasibleScheduleError reports a Strong constraint pushing a pinned task
// past its fixed start date.
type InfeasibleScheduleError struct {
	TaskID      int
	Predecessor int
	Type        model.RelationType
	Pinned      calendar.Date
	Required    calendar.Date
}

func (e *InfeasibleScheduleError) Error() string {
	return fmt.Sprintf("%s: task %d is pinned to %s but its %s relation from task %d requires %s",
		ErrInfeasible.Error(), e.TaskID, e.Pinned, e.Type, e.Predecessor, e.Required)
}

func (e *InfeasibleScheduleError) Unwrap() error { return ErrInfeasible }
