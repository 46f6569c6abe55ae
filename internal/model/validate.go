package model

// Validate checks every domain invariant that does not require graph
// traversal: id uniqueness, value ranges, cost coherence, and referential
// integrity of relations, allocations, vacations, and custom properties.
// Cycle detection over the relation graph and ownership tree lives in the
// graph package.
func (p *Project) Validate() error {
	if err := p.WorkWeek.Validate(); err != nil {
		return validationf("project %q: %v", p.Name, err)
	}
	if p.Start.IsZero() {
		return validationf("project %q has no anchor date", p.Name)
	}

	taskIDs := make(map[int]bool, len(p.Tasks))
	uids := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if taskIDs[t.ID] {
			return validationf("duplicate task id %d", t.ID)
		}
		taskIDs[t.ID] = true
		if t.UID != "" {
			if uids[t.UID] {
				return validationf("duplicate task uid %q", t.UID)
			}
			uids[t.UID] = true
		}
		if err := p.validateTask(t); err != nil {
			return err
		}
	}

	for _, t := range p.Tasks {
		if t.Parent != nil && !taskIDs[*t.Parent] {
			return referencef("task %d names unknown parent %d", t.ID, *t.Parent)
		}
	}

	resourceIDs := make(map[int]bool, len(p.Resources))
	for _, r := range p.Resources {
		if resourceIDs[r.ID] {
			return validationf("duplicate resource id %d", r.ID)
		}
		resourceIDs[r.ID] = true
	}

	roleIDs := make(map[int]bool, len(p.Roles))
	for _, r := range p.Roles {
		if roleIDs[r.ID] {
			return validationf("duplicate role id %d", r.ID)
		}
		roleIDs[r.ID] = true
	}

	for _, rel := range p.Relations {
		if rel.Predecessor == rel.Successor {
			return validationf("task %d depends on itself", rel.Predecessor)
		}
		if !taskIDs[rel.Predecessor] {
			return referencef("relation names unknown predecessor task %d", rel.Predecessor)
		}
		if !taskIDs[rel.Successor] {
			return referencef("relation names unknown successor task %d", rel.Successor)
		}
		// Summary dates are derived from children, never constrained, so a
		// relation endpoint on a summary task has no defined meaning.
		if p.IsSummary(rel.Predecessor) {
			return validationf("relation predecessor %d is a summary task", rel.Predecessor)
		}
		if p.IsSummary(rel.Successor) {
			return validationf("relation successor %d is a summary task", rel.Successor)
		}
	}

	for _, a := range p.Allocations {
		if !taskIDs[a.TaskID] {
			return referencef("allocation names unknown task %d", a.TaskID)
		}
		if !resourceIDs[a.ResourceID] {
			return referencef("allocation names unknown resource %d", a.ResourceID)
		}
		if a.Load < 0 {
			return validationf("allocation of resource %d to task %d has negative load %v", a.ResourceID, a.TaskID, a.Load)
		}
	}

	for _, v := range p.Vacations {
		if !resourceIDs[v.ResourceID] {
			return referencef("vacation names unknown resource %d", v.ResourceID)
		}
		if v.End.Before(v.Start) {
			return validationf("vacation of resource %d ends %s before it starts %s", v.ResourceID, v.End, v.Start)
		}
	}

	propIDs := make(map[string]bool, len(p.Properties))
	for _, def := range p.Properties {
		if propIDs[def.ID] {
			return validationf("duplicate custom property id %q", def.ID)
		}
		propIDs[def.ID] = true
		if def.Default != "" {
			if _, err := ParsePropertyValue(def.Type, def.Default); err != nil {
				return validationf("custom property %q default: %v", def.ID, err)
			}
		}
	}
	for _, t := range p.Tasks {
		for id, val := range t.Properties {
			def := p.PropertyByID(id)
			if def == nil {
				return referencef("task %d names unknown custom property %q", t.ID, id)
			}
			if val.Type != def.Type {
				return validationf("task %d stores %s value for %s property %q", t.ID, val.Type, def.Type, id)
			}
		}
	}

	return nil
}

func (p *Project) validateTask(t *Task) error {
	if t.Duration < 0 {
		return validationf("task %d has negative duration %d", t.ID, t.Duration)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return validationf("task %d progress %d is outside [0,100]", t.ID, t.Progress)
	}
	if t.Milestone && t.Duration != 0 {
		return validationf("milestone %d has non-zero duration %d", t.ID, t.Duration)
	}
	if t.Pinned && t.Start == nil {
		return validationf("task %d is pinned but has no start date", t.ID)
	}
	// Cost is either calculated or a manual value with the flag set.
	if t.ManualCost != nil && !t.CostIsManual {
		return validationf("task %d has a manual cost value but is marked calculated", t.ID)
	}
	if t.ManualCost == nil && t.CostIsManual {
		return validationf("task %d is marked manual cost but has no value", t.ID)
	}
	return nil
}
