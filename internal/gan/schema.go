// Package gan is the bidirectional codec between the domain model and the
// GanttProject .gan XML dialect. The dialect's conventions are an external
// contract: relation types use a fixed numeric table, a relation element is
// a child of the predecessor task naming the successor, custom property
// values travel as strings, and dates are calendar dates only.
package gan

import (
	"encoding/xml"
	"fmt"

	"github.com/vk/ganttgen/internal/model"
)

// Relation type codes on the wire. The table is fixed by the desktop
// application and must never be reordered; files written with the
// superseded historical mapping are a versioning hazard and are rejected,
// not reinterpreted.
const (
	wireStartToStart   = 1
	wireFinishToStart  = 2
	wireFinishToFinish = 3
	wireStartToFinish  = 4
)

func relationTypeCode(t model.RelationType) (int, error) {
	switch t {
	case model.StartToStart:
		return wireStartToStart, nil
	case model.FinishToStart:
		return wireFinishToStart, nil
	case model.FinishToFinish:
		return wireFinishToFinish, nil
	case model.StartToFinish:
		return wireStartToFinish, nil
	}
	return 0, fmt.Errorf("relation type %v has no wire code", t)
}

func relationTypeFromCode(code int) (model.RelationType, error) {
	switch code {
	case wireStartToStart:
		return model.StartToStart, nil
	case wireFinishToStart:
		return model.FinishToStart, nil
	case wireFinishToFinish:
		return model.FinishToFinish, nil
	case wireStartToFinish:
		return model.StartToFinish, nil
	}
	return 0, fmt.Errorf("relation type code %d is outside the known table", code)
}

// Priority codes on the wire. Normal has no code: its attribute is omitted.
func priorityCode(p model.Priority) (int, bool, error) {
	switch p {
	case model.PriorityNormal:
		return 0, false, nil
	case model.PriorityLow:
		return 0, true, nil
	case model.PriorityHigh:
		return 2, true, nil
	case model.PriorityLowest:
		return 3, true, nil
	case model.PriorityHighest:
		return 4, true, nil
	}
	return 0, false, fmt.Errorf("priority %v has no wire code", p)
}

func priorityFromCode(code int) (model.Priority, error) {
	switch code {
	case 0:
		return model.PriorityLow, nil
	case 2:
		return model.PriorityHigh, nil
	case 3:
		return model.PriorityLowest, nil
	case 4:
		return model.PriorityHighest, nil
	}
	return 0, fmt.Errorf("unknown priority code %d", code)
}

// cdata wraps free text so literal markup characters survive verbatim.
type cdata struct {
	Text string `xml:",cdata"`
}

type xmlProject struct {
	XMLName                 xml.Name       `xml:"project"`
	Name                    string         `xml:"name,attr"`
	Company                 string         `xml:"company,attr"`
	WebLink                 string         `xml:"webLink,attr"`
	ViewDate                string         `xml:"view-date,attr"`
	ViewIndex               int            `xml:"view-index,attr"`
	GanttDividerLocation    int            `xml:"gantt-divider-location,attr"`
	ResourceDividerLocation int            `xml:"resource-divider-location,attr"`
	Version                 string         `xml:"version,attr"`
	Locale                  string         `xml:"locale,attr"`
	Description             cdata          `xml:"description"`
	Views                   []xmlView      `xml:"view"`
	Calendars               xmlCalendars   `xml:"calendars"`
	Tasks                   xmlTasks       `xml:"tasks"`
	Resources               xmlResources   `xml:"resources"`
	Allocations             xmlAllocations `xml:"allocations"`
	Vacations               xmlVacations   `xml:"vacations"`
	Previous                xmlEmpty       `xml:"previous"`
	Roles                   []xmlRoles     `xml:"roles"`
}

type xmlEmpty struct{}

type xmlView struct {
	ZoomingState string         `xml:"zooming-state,attr,omitempty"`
	ID           string         `xml:"id,attr"`
	Fields       []xmlViewField `xml:"field"`
}

type xmlViewField struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Width int    `xml:"width,attr"`
	Order int    `xml:"order,attr"`
}

type xmlCalendars struct {
	DayTypes    xmlDayTypes    `xml:"day-types"`
	DefaultWeek xmlDefaultWeek `xml:"default-week"`
}

type xmlDayTypes struct {
	Types []xmlDayType `xml:"day-type"`
}

type xmlDayType struct {
	ID int `xml:"id,attr"`
}

// xmlDefaultWeek carries the 7-day working pattern; "1" means non-working.
type xmlDefaultWeek struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Sun  string `xml:"sun,attr"`
	Mon  string `xml:"mon,attr"`
	Tue  string `xml:"tue,attr"`
	Wed  string `xml:"wed,attr"`
	Thu  string `xml:"thu,attr"`
	Fri  string `xml:"fri,attr"`
	Sat  string `xml:"sat,attr"`
}

type xmlTasks struct {
	EmptyMilestones bool              `xml:"empty-milestones,attr"`
	TaskProperties  xmlTaskProperties `xml:"taskproperties"`
	Tasks           []xmlTask         `xml:"task"`
}

type xmlTaskProperties struct {
	Properties []xmlTaskPropertyDef `xml:"taskproperty"`
}

type xmlTaskPropertyDef struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	Type         string `xml:"type,attr"` // "default" or "custom"
	ValueType    string `xml:"valuetype,attr"`
	DefaultValue string `xml:"defaultvalue,attr,omitempty"`
}

type xmlTask struct {
	ID              int                 `xml:"id,attr"`
	UID             string              `xml:"uid,attr"`
	Name            string              `xml:"name,attr"`
	Meeting         bool                `xml:"meeting,attr"`
	Start           string              `xml:"start,attr"`
	Duration        int                 `xml:"duration,attr"`
	Complete        int                 `xml:"complete,attr"`
	Expand          bool                `xml:"expand,attr"`
	Priority        *int                `xml:"priority,attr,omitempty"`
	Color           string              `xml:"color,attr,omitempty"`
	Shape           string              `xml:"shape,attr,omitempty"`
	WebLink         string              `xml:"webLink,attr,omitempty"`
	CostManualValue *float64            `xml:"cost-manual-value,attr,omitempty"`
	CostCalculated  *bool               `xml:"cost-calculated,attr,omitempty"`
	Notes           *cdata              `xml:"notes"`
	Properties      []xmlCustomProperty `xml:"customproperty"`
	Depends         []xmlDepend         `xml:"depend"`
	Tasks           []xmlTask           `xml:"task"`
}

type xmlCustomProperty struct {
	TaskPropertyID string `xml:"taskproperty-id,attr"`
	Value          string `xml:"value,attr"`
}

// xmlDepend lives inside the predecessor task element; its id attribute
// names the successor.
type xmlDepend struct {
	ID         int    `xml:"id,attr"`
	Type       int    `xml:"type,attr"`
	Difference int    `xml:"difference,attr"`
	Hardness   string `xml:"hardness,attr"`
}

type xmlResources struct {
	Resources []xmlResource `xml:"resource"`
}

type xmlResource struct {
	ID       int      `xml:"id,attr"`
	Name     string   `xml:"name,attr"`
	Function string   `xml:"function,attr"`
	Contacts string   `xml:"contacts,attr"`
	Phone    string   `xml:"phone,attr"`
	Rate     *xmlRate `xml:"rate"`
}

type xmlRate struct {
	Name  string  `xml:"name,attr"`
	Value float64 `xml:"value,attr"`
}

type xmlAllocations struct {
	Allocations []xmlAllocation `xml:"allocation"`
}

type xmlAllocation struct {
	TaskID      int     `xml:"task-id,attr"`
	ResourceID  int     `xml:"resource-id,attr"`
	Function    string  `xml:"function,attr"`
	Responsible bool    `xml:"responsible,attr"`
	Load        float64 `xml:"load,attr"`
}

type xmlVacations struct {
	Vacations []xmlVacation `xml:"vacation"`
}

type xmlVacation struct {
	Start      string `xml:"start,attr"`
	End        string `xml:"end,attr"`
	ResourceID int    `xml:"resourceid,attr"`
}

type xmlRoles struct {
	RolesetName string    `xml:"roleset-name,attr,omitempty"`
	Roles       []xmlRole `xml:"role"`
}

type xmlRole struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// builtinTaskProperties are the fixed tpd0..tpd9 definitions every document
// declares ahead of any custom ones.
var builtinTaskProperties = []xmlTaskPropertyDef{
	{ID: "tpd0", Name: "type", Type: "default", ValueType: "icon"},
	{ID: "tpd1", Name: "priority", Type: "default", ValueType: "icon"},
	{ID: "tpd2", Name: "info", Type: "default", ValueType: "icon"},
	{ID: "tpd3", Name: "name", Type: "default", ValueType: "text"},
	{ID: "tpd4", Name: "begindate", Type: "default", ValueType: "date"},
	{ID: "tpd5", Name: "enddate", Type: "default", ValueType: "date"},
	{ID: "tpd6", Name: "duration", Type: "default", ValueType: "int"},
	{ID: "tpd7", Name: "completion", Type: "default", ValueType: "int"},
	{ID: "tpd8", Name: "coordinator", Type: "default", ValueType: "text"},
	{ID: "tpd9", Name: "predecessorsr", Type: "default", ValueType: "text"},
}

func defaultViews() []xmlView {
	return []xmlView{{
		ZoomingState: "default:6",
		ID:           "gantt-chart",
		Fields: []xmlViewField{
			{ID: "tpd3", Name: "Name", Width: 200, Order: 0},
			{ID: "tpd4", Name: "Begin date", Width: 75, Order: 1},
			{ID: "tpd5", Name: "End date", Width: 75, Order: 2},
		},
	}}
}
