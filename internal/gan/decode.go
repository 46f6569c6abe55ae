package gan

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/graph"
	"github.com/vk/ganttgen/internal/model"
)

// Decode parses a .gan document back into the domain model, re-runs the
// model's own validation rather than trusting the file, and checks both
// the relation graph and the ownership tree for cycles.
func Decode(r io.Reader) (*model.Project, error) {
	var doc xmlProject
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, decodingf(err, "parsing document")
	}

	start, err := calendar.ParseDate(doc.ViewDate)
	if err != nil {
		return nil, decodingf(err, "project view-date")
	}

	p := model.NewProject(doc.Name, start)
	p.Company = doc.Company
	p.WebLink = doc.WebLink
	p.Description = doc.Description.Text
	p.Version = doc.Version
	p.Locale = doc.Locale
	p.GanttDividerLocation = doc.GanttDividerLocation
	p.ResourceDividerLocation = doc.ResourceDividerLocation

	week, err := weekFromWire(doc.Calendars.DefaultWeek)
	if err != nil {
		return nil, err
	}
	p.WorkWeek = week

	for _, def := range doc.Tasks.TaskProperties.Properties {
		if def.Type != "custom" {
			continue
		}
		valueType, err := model.ParsePropertyType(def.ValueType)
		if err != nil {
			return nil, decodingf(err, "custom property %q", def.ID)
		}
		p.Properties = append(p.Properties, model.PropertyDefinition{
			ID:      def.ID,
			Name:    def.Name,
			Type:    valueType,
			Default: def.DefaultValue,
		})
	}

	for i := range doc.Tasks.Tasks {
		if err := decodeTask(p, &doc.Tasks.Tasks[i], nil); err != nil {
			return nil, err
		}
	}

	for _, rn := range doc.Resources.Resources {
		res := &model.Resource{
			ID:       rn.ID,
			Name:     rn.Name,
			Function: rn.Function,
			Contacts: rn.Contacts,
			Phone:    rn.Phone,
		}
		if rn.Rate != nil {
			res.StandardRate = rn.Rate.Value
		}
		p.Resources = append(p.Resources, res)
	}

	for _, an := range doc.Allocations.Allocations {
		p.Allocations = append(p.Allocations, model.Allocation{
			TaskID:      an.TaskID,
			ResourceID:  an.ResourceID,
			Function:    an.Function,
			Responsible: an.Responsible,
			Load:        an.Load,
		})
	}

	for _, vn := range doc.Vacations.Vacations {
		vStart, err := calendar.ParseDate(vn.Start)
		if err != nil {
			return nil, decodingf(err, "vacation of resource %d", vn.ResourceID)
		}
		vEnd, err := calendar.ParseDate(vn.End)
		if err != nil {
			return nil, decodingf(err, "vacation of resource %d", vn.ResourceID)
		}
		p.Vacations = append(p.Vacations, model.Vacation{
			ResourceID: vn.ResourceID,
			Start:      vStart,
			End:        vEnd,
		})
	}

	for _, group := range doc.Roles {
		for _, rn := range group.Roles {
			p.Roles = append(p.Roles, model.Role{ID: rn.ID, Name: rn.Name})
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := validateAcyclic(p); err != nil {
		return nil, err
	}
	return p, nil
}

// validateAcyclic rejects documents whose relations or task nesting form a
// cycle. Referential checks have already passed, so only a back-edge can
// fail here.
func validateAcyclic(p *model.Project) error {
	ids := make([]int, len(p.Tasks))
	for i, t := range p.Tasks {
		ids[i] = t.ID
	}

	tree, err := graph.NewTree(ids)
	if err != nil {
		return err
	}
	for _, t := range p.Tasks {
		if t.Parent == nil {
			continue
		}
		if err := tree.SetParent(t.ID, *t.Parent); err != nil {
			return fmt.Errorf("ownership tree: %w", err)
		}
	}
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("ownership tree: %w", err)
	}

	g, err := graph.New(ids)
	if err != nil {
		return err
	}
	for _, r := range p.Relations {
		if err := g.AddEdge(r.Predecessor, r.Successor); err != nil {
			return fmt.Errorf("relation graph: %w", err)
		}
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("relation graph: %w", err)
	}
	return nil
}

func decodeTask(p *model.Project, node *xmlTask, parent *int) error {
	start, err := calendar.ParseDate(node.Start)
	if err != nil {
		return decodingf(err, "task %d start", node.ID)
	}
	end, err := calendar.AddWorkingDays(start, node.Duration, p.WorkWeek)
	if err != nil {
		return decodingf(err, "task %d span", node.ID)
	}

	t := &model.Task{
		ID:        node.ID,
		UID:       node.UID,
		Name:      node.Name,
		Duration:  node.Duration,
		Start:     &start,
		End:       &end,
		Milestone: node.Meeting,
		Progress:  node.Complete,
		Parent:    parent,
		Color:     node.Color,
		Shape:     node.Shape,
		Expand:    node.Expand,
	}

	if node.Priority != nil {
		priority, err := priorityFromCode(*node.Priority)
		if err != nil {
			return decodingf(err, "task %d", node.ID)
		}
		t.Priority = priority
	}

	if node.WebLink != "" {
		link, err := url.PathUnescape(node.WebLink)
		if err != nil {
			return decodingf(err, "task %d webLink", node.ID)
		}
		t.WebLink = link
	}

	if node.CostManualValue != nil {
		value := *node.CostManualValue
		t.ManualCost = &value
		t.CostIsManual = node.CostCalculated == nil || !*node.CostCalculated
	}

	if node.Notes != nil {
		t.Notes = node.Notes.Text
	}

	if len(node.Properties) > 0 {
		t.Properties = make(map[string]model.PropertyValue, len(node.Properties))
		for _, prop := range node.Properties {
			def := p.PropertyByID(prop.TaskPropertyID)
			if def == nil {
				return decodingf(nil, "task %d names unknown custom property %q", node.ID, prop.TaskPropertyID)
			}
			// The declared type in the definition registry is the only
			// source of type information; the string's shape never is.
			value, err := model.ParsePropertyValue(def.Type, prop.Value)
			if err != nil {
				return decodingf(err, "task %d property %q", node.ID, prop.TaskPropertyID)
			}
			t.Properties[prop.TaskPropertyID] = value
		}
	}

	p.Tasks = append(p.Tasks, t)

	for _, dep := range node.Depends {
		relType, err := relationTypeFromCode(dep.Type)
		if err != nil {
			return decodingf(err, "relation on task %d", node.ID)
		}
		// The desktop application omits the attribute for the default.
		hardness := model.Strong
		if dep.Hardness != "" {
			hardness, err = model.ParseHardness(dep.Hardness)
			if err != nil {
				return decodingf(err, "relation on task %d", node.ID)
			}
		}
		p.Relations = append(p.Relations, model.Relation{
			Predecessor: node.ID,
			Successor:   dep.ID,
			Type:        relType,
			Lag:         dep.Difference,
			Hardness:    hardness,
		})
	}

	for i := range node.Tasks {
		owner := node.ID
		if err := decodeTask(p, &node.Tasks[i], &owner); err != nil {
			return err
		}
	}
	return nil
}

func weekFromWire(week xmlDefaultWeek) (calendar.WorkWeek, error) {
	var w calendar.WorkWeek
	days := []struct {
		day  time.Weekday
		mark string
	}{
		{time.Sunday, week.Sun},
		{time.Monday, week.Mon},
		{time.Tuesday, week.Tue},
		{time.Wednesday, week.Wed},
		{time.Thursday, week.Thu},
		{time.Friday, week.Fri},
		{time.Saturday, week.Sat},
	}
	for _, d := range days {
		switch d.mark {
		case "0":
			w[d.day] = true
		case "1":
			w[d.day] = false
		default:
			return calendar.WorkWeek{}, decodingf(nil, "default-week marks %s as %q, expected \"0\" or \"1\"", d.day, d.mark)
		}
	}
	return w, nil
}
