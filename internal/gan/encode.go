package gan

import (
	"encoding/xml"
	"io"
	"sort"
	"time"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/model"
)

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// Encode serializes a resolved project into the .gan dialect. Every
// cross-reference is validated before a single byte is written; any model
// value the schema cannot carry is a hard error, never dropped.
func Encode(w io.Writer, p *model.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}

	doc, err := buildDocument(p)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return encodingf(err, "writing XML header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return encodingf(err, "writing project %q", p.Name)
	}
	if err := enc.Flush(); err != nil {
		return encodingf(err, "flushing project %q", p.Name)
	}
	return nil
}

func buildDocument(p *model.Project) (*xmlProject, error) {
	doc := &xmlProject{
		Name:                    p.Name,
		Company:                 p.Company,
		WebLink:                 p.WebLink,
		ViewDate:                p.Start.String(),
		ViewIndex:               0,
		GanttDividerLocation:    p.GanttDividerLocation,
		ResourceDividerLocation: p.ResourceDividerLocation,
		Version:                 p.Version,
		Locale:                  p.Locale,
		Description:             cdata{Text: p.Description},
		Views:                   defaultViews(),
		Calendars: xmlCalendars{
			DayTypes:    xmlDayTypes{Types: []xmlDayType{{ID: 0}, {ID: 1}}},
			DefaultWeek: weekToWire(p.WorkWeek),
		},
	}

	doc.Tasks.EmptyMilestones = true
	doc.Tasks.TaskProperties.Properties = append([]xmlTaskPropertyDef(nil), builtinTaskProperties...)
	for _, def := range p.Properties {
		doc.Tasks.TaskProperties.Properties = append(doc.Tasks.TaskProperties.Properties, xmlTaskPropertyDef{
			ID:           def.ID,
			Name:         def.Name,
			Type:         "custom",
			ValueType:    def.Type.String(),
			DefaultValue: def.Default,
		})
	}

	for _, id := range p.RootTasks() {
		node, err := buildTask(p, p.TaskByID(id))
		if err != nil {
			return nil, err
		}
		doc.Tasks.Tasks = append(doc.Tasks.Tasks, *node)
	}

	for _, r := range p.Resources {
		node := xmlResource{
			ID:       r.ID,
			Name:     r.Name,
			Function: r.Function,
			Contacts: r.Contacts,
			Phone:    r.Phone,
		}
		if r.StandardRate > 0 {
			node.Rate = &xmlRate{Name: "standard", Value: r.StandardRate}
		}
		doc.Resources.Resources = append(doc.Resources.Resources, node)
	}

	for _, a := range p.Allocations {
		doc.Allocations.Allocations = append(doc.Allocations.Allocations, xmlAllocation{
			TaskID:      a.TaskID,
			ResourceID:  a.ResourceID,
			Function:    a.Function,
			Responsible: a.Responsible,
			Load:        a.Load,
		})
	}

	for _, v := range p.Vacations {
		doc.Vacations.Vacations = append(doc.Vacations.Vacations, xmlVacation{
			Start:      v.Start.String(),
			End:        v.End.String(),
			ResourceID: v.ResourceID,
		})
	}

	doc.Roles = append(doc.Roles, xmlRoles{RolesetName: "Default"})
	if len(p.Roles) > 0 {
		user := xmlRoles{}
		for _, r := range p.Roles {
			user.Roles = append(user.Roles, xmlRole{ID: r.ID, Name: r.Name})
		}
		doc.Roles = append(doc.Roles, user)
	}

	return doc, nil
}

// buildTask converts one task and, recursively, the subtree it owns.
// Relations are emitted here, on the predecessor, naming the successor.
func buildTask(p *model.Project, t *model.Task) (*xmlTask, error) {
	if t.Start == nil {
		return nil, encodingf(nil, "task %d has no resolved start date", t.ID)
	}

	node := &xmlTask{
		ID:       t.ID,
		UID:      t.UID,
		Name:     t.Name,
		Meeting:  t.Milestone,
		Start:    t.Start.String(),
		Duration: t.Duration,
		Complete: t.Progress,
		Expand:   t.Expand,
		Color:    t.Color,
		Shape:    t.Shape,
	}

	if code, present, err := priorityCode(t.Priority); err != nil {
		return nil, encodingf(err, "task %d", t.ID)
	} else if present {
		node.Priority = &code
	}

	if t.WebLink != "" {
		node.WebLink = percentEncode(t.WebLink)
	}

	if t.ManualCost != nil {
		value := *t.ManualCost
		calculated := !t.CostIsManual
		node.CostManualValue = &value
		node.CostCalculated = &calculated
	}

	if t.Notes != "" {
		node.Notes = &cdata{Text: t.Notes}
	}

	propertyIDs := make([]string, 0, len(t.Properties))
	for id := range t.Properties {
		propertyIDs = append(propertyIDs, id)
	}
	sort.Strings(propertyIDs)
	for _, id := range propertyIDs {
		node.Properties = append(node.Properties, xmlCustomProperty{
			TaskPropertyID: id,
			Value:          t.Properties[id].Canonical(),
		})
	}

	for _, rel := range p.SuccessorsOf(t.ID) {
		code, err := relationTypeCode(rel.Type)
		if err != nil {
			return nil, encodingf(err, "relation from task %d to task %d", rel.Predecessor, rel.Successor)
		}
		node.Depends = append(node.Depends, xmlDepend{
			ID:         rel.Successor,
			Type:       code,
			Difference: rel.Lag,
			Hardness:   rel.Hardness.String(),
		})
	}

	for _, cid := range p.ChildrenOf(t.ID) {
		child, err := buildTask(p, p.TaskByID(cid))
		if err != nil {
			return nil, err
		}
		node.Tasks = append(node.Tasks, *child)
	}
	return node, nil
}

func weekToWire(w calendar.WorkWeek) xmlDefaultWeek {
	mark := func(day time.Weekday) string {
		if w[day] {
			return "0"
		}
		return "1"
	}
	return xmlDefaultWeek{
		ID:   1,
		Name: "default",
		Sun:  mark(time.Sunday),
		Mon:  mark(time.Monday),
		Tue:  mark(time.Tuesday),
		Wed:  mark(time.Wednesday),
		Thu:  mark(time.Thursday),
		Fri:  mark(time.Friday),
		Sat:  mark(time.Saturday),
	}
}

const upperhex = "0123456789ABCDEF"

// percentEncode escapes every byte outside the unreserved set, matching the
// strictest URL quoting so links survive the desktop application verbatim.
func percentEncode(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			out = append(out, c)
		default:
			out = append(out, '%', upperhex[c>>4], upperhex[c&0xF])
		}
	}
	return string(out)
}
