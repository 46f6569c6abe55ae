package model

import "github.com/vk/ganttgen/internal/calendar"

// Resource is a person or piece of equipment assignable to tasks.
type Resource struct {
	ID           int
	Name         string
	Function     string // role reference, e.g. "1" or "Default:1"
	Contacts     string // email
	Phone        string
	StandardRate float64
}

// Allocation links a resource to a task. Load is a percentage and may
// exceed 100; overallocation is representable, not an error.
type Allocation struct {
	TaskID      int
	ResourceID  int
	Function    string
	Responsible bool
	Load        float64
}

// Vacation is an inclusive unavailability range for a resource.
type Vacation struct {
	ResourceID int
	Start      calendar.Date
	End        calendar.Date
}

// Role is a named function resources and allocations can reference.
type Role struct {
	ID   int
	Name string
}
