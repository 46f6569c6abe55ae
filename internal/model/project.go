// Package model defines the project domain objects and their validation
// invariants. A project graph is built once by a producer (the HCL front
// end or the codec's decoder), validated, handed to the scheduler and codec
// for a single pass, then discarded.
package model

import "github.com/vk/ganttgen/internal/calendar"

// Default wire metadata matching the desktop application's current release.
const (
	DefaultVersion                 = "3.2.3200"
	DefaultLocale                  = "en_US"
	DefaultGanttDividerLocation    = 300
	DefaultResourceDividerLocation = 300
)

// Project owns every task, resource, relation, allocation, vacation, role,
// and custom property definition of a single plan.
type Project struct {
	Name        string
	Company     string
	WebLink     string
	Description string

	Start    calendar.Date // anchor date
	WorkWeek calendar.WorkWeek

	Version                 string
	Locale                  string
	GanttDividerLocation    int
	ResourceDividerLocation int

	Tasks       []*Task
	Relations   []Relation
	Resources   []*Resource
	Allocations []Allocation
	Vacations   []Vacation
	Roles       []Role
	Properties  []PropertyDefinition
}

// NewProject returns a project with the standard work week and default
// wire metadata.
func NewProject(name string, start calendar.Date) *Project {
	return &Project{
		Name:                    name,
		Start:                   start,
		WorkWeek:                calendar.StandardWeek(),
		Version:                 DefaultVersion,
		Locale:                  DefaultLocale,
		GanttDividerLocation:    DefaultGanttDividerLocation,
		ResourceDividerLocation: DefaultResourceDividerLocation,
	}
}

// TaskByID returns the task with the given id, or nil.
func (p *Project) TaskByID(id int) *Task {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ResourceByID returns the resource with the given id, or nil.
func (p *Project) ResourceByID(id int) *Resource {
	for _, r := range p.Resources {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// PropertyByID returns the custom property definition with the given id,
// or nil.
func (p *Project) PropertyByID(id string) *PropertyDefinition {
	for i := range p.Properties {
		if p.Properties[i].ID == id {
			return &p.Properties[i]
		}
	}
	return nil
}

// ChildrenOf returns the ids of tasks owned by the given parent, in
// declaration order.
func (p *Project) ChildrenOf(parent int) []int {
	var out []int
	for _, t := range p.Tasks {
		if t.Parent != nil && *t.Parent == parent {
			out = append(out, t.ID)
		}
	}
	return out
}

// RootTasks returns the ids of tasks with no parent, in declaration order.
func (p *Project) RootTasks() []int {
	var out []int
	for _, t := range p.Tasks {
		if t.Parent == nil {
			out = append(out, t.ID)
		}
	}
	return out
}

// IsSummary reports whether the task with the given id owns child tasks.
func (p *Project) IsSummary(id int) bool {
	for _, t := range p.Tasks {
		if t.Parent != nil && *t.Parent == id {
			return true
		}
	}
	return false
}

// SuccessorsOf returns the relations whose predecessor is the given task,
// in declaration order. This is the forward view over the central relation
// store; no per-task relation lists exist.
func (p *Project) SuccessorsOf(id int) []Relation {
	var out []Relation
	for _, r := range p.Relations {
		if r.Predecessor == id {
			out = append(out, r)
		}
	}
	return out
}

// PredecessorsOf returns the relations whose successor is the given task,
// in declaration order.
func (p *Project) PredecessorsOf(id int) []Relation {
	var out []Relation
	for _, r := range p.Relations {
		if r.Successor == id {
			out = append(out, r)
		}
	}
	return out
}
