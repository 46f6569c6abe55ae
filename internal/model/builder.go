package model

import (
	"fmt"

	"github.com/vk/ganttgen/internal/calendar"
)

// Builder assembles a project incrementally, assigning ids and UIDs from an
// injected Identity wherever the caller leaves them unset. Pass a negative
// task or resource id to request assignment. Finish with Build, which runs
// full validation.
type Builder struct {
	project      *Project
	identity     Identity
	taskIDs      map[int]bool
	nextResource int
	nextRole     int
	nextProperty int
}

// NewBuilder starts a project with the standard work week; the work week
// can be overridden through the returned builder's Project before Build.
func NewBuilder(name string, start calendar.Date, identity Identity) *Builder {
	return &Builder{
		project:  NewProject(name, start),
		identity: identity,
		taskIDs:  make(map[int]bool),
		nextRole: 1,
	}
}

// Project exposes the partially built project for setting optional
// metadata (company, description, work week, dividers).
func (b *Builder) Project() *Project {
	return b.project
}

// AddTask appends a task. A negative id requests a fresh one from the
// identity source; an empty UID is always filled in. Returns the task with
// identity resolved.
func (b *Builder) AddTask(t *Task) (*Task, error) {
	if t.ID < 0 {
		for {
			t.ID = b.identity.NextID()
			if !b.taskIDs[t.ID] {
				break
			}
		}
	} else if b.taskIDs[t.ID] {
		return nil, validationf("duplicate task id %d", t.ID)
	}
	b.taskIDs[t.ID] = true
	if t.UID == "" {
		t.UID = b.identity.NewUID()
	}
	b.project.Tasks = append(b.project.Tasks, t)
	return t, nil
}

// AddRelation appends a relation keyed by its predecessor.
func (b *Builder) AddRelation(r Relation) {
	b.project.Relations = append(b.project.Relations, r)
}

// AddResource appends a resource, assigning the next free id when the
// given one is negative.
func (b *Builder) AddResource(r *Resource) *Resource {
	if r.ID < 0 {
		r.ID = b.nextResource
	}
	if r.ID >= b.nextResource {
		b.nextResource = r.ID + 1
	}
	if r.Function == "" {
		r.Function = "Default:1"
	}
	b.project.Resources = append(b.project.Resources, r)
	return r
}

// AddRole appends a role, assigning the next free id when the given one is
// negative. Role ids start at 1 to match the external convention.
func (b *Builder) AddRole(r Role) Role {
	if r.ID < 0 {
		r.ID = b.nextRole
	}
	if r.ID >= b.nextRole {
		b.nextRole = r.ID + 1
	}
	b.project.Roles = append(b.project.Roles, r)
	return r
}

// AddAllocation appends a resource allocation.
func (b *Builder) AddAllocation(a Allocation) {
	b.project.Allocations = append(b.project.Allocations, a)
}

// AddVacation appends a resource vacation.
func (b *Builder) AddVacation(v Vacation) {
	b.project.Vacations = append(b.project.Vacations, v)
}

// AddProperty appends a custom property definition. An empty id receives
// the next "tpcN" id in declaration order.
func (b *Builder) AddProperty(def PropertyDefinition) PropertyDefinition {
	if def.ID == "" {
		def.ID = fmt.Sprintf("tpc%d", b.nextProperty)
	}
	b.nextProperty++
	b.project.Properties = append(b.project.Properties, def)
	return def
}

// Build validates the assembled project and returns it.
func (b *Builder) Build() (*Project, error) {
	if err := b.project.Validate(); err != nil {
		return nil, err
	}
	return b.project, nil
}
