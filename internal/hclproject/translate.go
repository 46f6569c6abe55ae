package hclproject

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/model"
)

// translate converts the decoded HCL blocks into a validated project. Task
// labels resolve to numeric ids in a second pass so depend and assign
// blocks may reference tasks and resources declared later in the file.
func (l *Loader) translate(ctx context.Context, block *projectBlock, identity model.Identity) (*model.Project, error) {
	start, err := calendar.ParseDate(block.Start)
	if err != nil {
		return nil, fmt.Errorf("project start: %w", err)
	}

	b := model.NewBuilder(block.Name, start, identity)
	p := b.Project()
	p.Company = block.Company
	p.WebLink = block.WebLink
	p.Description = block.Description

	if len(block.WorkWeek) > 0 {
		week, err := parseWorkWeek(block.WorkWeek)
		if err != nil {
			return nil, err
		}
		p.WorkWeek = week
	}

	roleIDs := make(map[string]int, len(block.Roles))
	for _, r := range block.Roles {
		id := -1
		if r.ID != nil {
			id = *r.ID
		}
		added := b.AddRole(model.Role{ID: id, Name: r.Name})
		if _, ok := roleIDs[r.Name]; ok {
			return nil, fmt.Errorf("duplicate role %q", r.Name)
		}
		roleIDs[r.Name] = added.ID
	}

	propertyIDs := make(map[string]model.PropertyDefinition, len(block.Properties))
	for _, tp := range block.Properties {
		valueType, err := model.ParsePropertyType(tp.Type)
		if err != nil {
			return nil, fmt.Errorf("taskproperty %q: %w", tp.Name, err)
		}
		def := model.PropertyDefinition{Name: tp.Name, Type: valueType}
		if tp.Default != nil {
			value, err := convertValue(*tp.Default, valueType)
			if err != nil {
				return nil, fmt.Errorf("taskproperty %q default: %w", tp.Name, err)
			}
			def.Default = value.Canonical()
		}
		if _, ok := propertyIDs[tp.Name]; ok {
			return nil, fmt.Errorf("duplicate taskproperty %q", tp.Name)
		}
		propertyIDs[tp.Name] = b.AddProperty(def)
	}

	resourceIDs := make(map[string]int, len(block.Resources))
	for _, r := range block.Resources {
		id := -1
		if r.ID != nil {
			id = *r.ID
		}
		function := r.Function
		if roleID, ok := roleIDs[function]; ok {
			function = strconv.Itoa(roleID)
		}
		added := b.AddResource(&model.Resource{
			ID:           id,
			Name:         r.Name,
			Function:     function,
			Contacts:     r.Contacts,
			Phone:        r.Phone,
			StandardRate: r.Rate,
		})
		if _, ok := resourceIDs[r.Name]; ok {
			return nil, fmt.Errorf("duplicate resource %q", r.Name)
		}
		resourceIDs[r.Name] = added.ID
		for _, v := range r.Vacation {
			vStart, err := calendar.ParseDate(v.Start)
			if err != nil {
				return nil, fmt.Errorf("vacation of %q: %w", r.Name, err)
			}
			vEnd, err := calendar.ParseDate(v.End)
			if err != nil {
				return nil, fmt.Errorf("vacation of %q: %w", r.Name, err)
			}
			b.AddVacation(model.Vacation{ResourceID: added.ID, Start: vStart, End: vEnd})
		}
	}

	// First pass: create every task so labels resolve regardless of
	// declaration order.
	taskIDs := make(map[string]int)
	var addTasks func(blocks []*taskBlock, parent *int) error
	addTasks = func(blocks []*taskBlock, parent *int) error {
		for _, tb := range blocks {
			if _, ok := taskIDs[tb.Name]; ok {
				return fmt.Errorf("duplicate task %q", tb.Name)
			}
			task, err := translateTask(tb, parent)
			if err != nil {
				return err
			}
			added, err := b.AddTask(task)
			if err != nil {
				return err
			}
			taskIDs[tb.Name] = added.ID
			owner := added.ID
			if err := addTasks(tb.Subtasks, &owner); err != nil {
				return err
			}
		}
		return nil
	}
	if err := addTasks(block.Tasks, nil); err != nil {
		return nil, err
	}

	// Second pass: relations, allocations, and property values.
	var linkTasks func(blocks []*taskBlock) error
	linkTasks = func(blocks []*taskBlock) error {
		for _, tb := range blocks {
			if err := linkTask(b, tb, taskIDs, resourceIDs, roleIDs, propertyIDs); err != nil {
				return err
			}
			if err := linkTasks(tb.Subtasks); err != nil {
				return err
			}
		}
		return nil
	}
	if err := linkTasks(block.Tasks); err != nil {
		return nil, err
	}

	return b.Build()
}

func translateTask(tb *taskBlock, parent *int) (*model.Task, error) {
	priority, err := model.ParsePriority(tb.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", tb.Name, err)
	}

	id := -1
	if tb.ID != nil {
		id = *tb.ID
	}
	task := &model.Task{
		ID:        id,
		Name:      tb.Name,
		Duration:  tb.Duration,
		Milestone: tb.Milestone,
		Pinned:    tb.Pinned,
		Progress:  tb.Complete,
		Priority:  priority,
		Parent:    parent,
		Color:     tb.Color,
		Notes:     tb.Notes,
		WebLink:   tb.WebLink,
		Expand:    true,
	}
	if tb.Start != nil {
		startDate, err := calendar.ParseDate(*tb.Start)
		if err != nil {
			return nil, fmt.Errorf("task %q start: %w", tb.Name, err)
		}
		task.Start = &startDate
	}
	if tb.Cost != nil {
		value := *tb.Cost
		task.ManualCost = &value
		task.CostIsManual = true
	}
	return task, nil
}

func linkTask(b *model.Builder, tb *taskBlock, taskIDs map[string]int, resourceIDs map[string]int, roleIDs map[string]int, propertyIDs map[string]model.PropertyDefinition) error {
	taskID := taskIDs[tb.Name]

	for _, dep := range tb.Depends {
		predecessor, ok := taskIDs[dep.On]
		if !ok {
			return fmt.Errorf("task %q depends on unknown task %q", tb.Name, dep.On)
		}
		relType := model.FinishToStart
		if dep.Type != "" {
			parsed, err := model.ParseRelationType(dep.Type)
			if err != nil {
				return fmt.Errorf("task %q: %w", tb.Name, err)
			}
			relType = parsed
		}
		hardness := model.Strong
		if dep.Hardness != "" {
			parsed, err := model.ParseHardness(dep.Hardness)
			if err != nil {
				return fmt.Errorf("task %q: %w", tb.Name, err)
			}
			hardness = parsed
		}
		b.AddRelation(model.Relation{
			Predecessor: predecessor,
			Successor:   taskID,
			Type:        relType,
			Lag:         dep.Lag,
			Hardness:    hardness,
		})
	}

	for _, assign := range tb.Assigns {
		resourceID, ok := resourceIDs[assign.Resource]
		if !ok {
			return fmt.Errorf("task %q assigns unknown resource %q", tb.Name, assign.Resource)
		}
		load := 100.0
		if assign.Load != nil {
			load = *assign.Load
		}
		function := assign.Function
		if roleID, ok := roleIDs[function]; ok {
			function = strconv.Itoa(roleID)
		}
		if function == "" {
			function = "Default:1"
		}
		b.AddAllocation(model.Allocation{
			TaskID:      taskID,
			ResourceID:  resourceID,
			Function:    function,
			Responsible: assign.Responsible,
			Load:        load,
		})
	}

	if len(tb.Properties) > 0 {
		task := b.Project().TaskByID(taskID)
		task.Properties = make(map[string]model.PropertyValue, len(tb.Properties))
		for _, pv := range tb.Properties {
			def, ok := propertyIDs[pv.Property]
			if !ok {
				return fmt.Errorf("task %q sets unknown property %q", tb.Name, pv.Property)
			}
			value, err := convertValue(pv.Value, def.Type)
			if err != nil {
				return fmt.Errorf("task %q property %q: %w", tb.Name, pv.Property, err)
			}
			task.Properties[def.ID] = value
		}
	}
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func parseWorkWeek(days []string) (calendar.WorkWeek, error) {
	var week calendar.WorkWeek
	for _, name := range days {
		day, ok := weekdayNames[name]
		if !ok {
			return calendar.WorkWeek{}, fmt.Errorf("unknown weekday %q in work_week", name)
		}
		week[day] = true
	}
	if err := week.Validate(); err != nil {
		return calendar.WorkWeek{}, err
	}
	return week, nil
}
