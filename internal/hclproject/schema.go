package hclproject

import "github.com/zclconf/go-cty/cty"

// fileRoot is the top-level shape of a .gantt.hcl file.
type fileRoot struct {
	Project *projectBlock `hcl:"project,block"`
}

// projectBlock is the single `project "<name>" { ... }` block.
type projectBlock struct {
	Name        string   `hcl:"name,label"`
	Start       string   `hcl:"start"`
	WorkWeek    []string `hcl:"work_week,optional"`
	Company     string   `hcl:"company,optional"`
	WebLink     string   `hcl:"web_link,optional"`
	Description string   `hcl:"description,optional"`

	Roles      []*roleBlock         `hcl:"role,block"`
	Properties []*taskPropertyBlock `hcl:"taskproperty,block"`
	Resources  []*resourceBlock     `hcl:"resource,block"`
	Tasks      []*taskBlock         `hcl:"task,block"`
}

// taskBlock describes a task; the label is both its display name and the
// key sibling tasks use in depend blocks. Subtasks nest as further task
// blocks.
type taskBlock struct {
	Name      string   `hcl:"name,label"`
	ID        *int     `hcl:"id,optional"`
	Duration  int      `hcl:"duration,optional"`
	Milestone bool     `hcl:"milestone,optional"`
	Start     *string  `hcl:"start,optional"`
	Pinned    bool     `hcl:"pinned,optional"`
	Complete  int      `hcl:"complete,optional"`
	Priority  string   `hcl:"priority,optional"`
	Color     string   `hcl:"color,optional"`
	Notes     string   `hcl:"notes,optional"`
	WebLink   string   `hcl:"web_link,optional"`
	Cost      *float64 `hcl:"cost,optional"`

	Depends    []*dependBlock   `hcl:"depend,block"`
	Assigns    []*assignBlock   `hcl:"assign,block"`
	Properties []*propertyBlock `hcl:"property,block"`
	Subtasks   []*taskBlock     `hcl:"task,block"`
}

// dependBlock is authored on the successor: the label names the
// predecessor task this one waits for.
type dependBlock struct {
	On       string `hcl:"on,label"`
	Type     string `hcl:"type,optional"`     // SS | FS | FF | SF, default FS
	Lag      int    `hcl:"lag,optional"`      // working days, negative is lead
	Hardness string `hcl:"hardness,optional"` // Strong | Rubber, default Strong
}

type assignBlock struct {
	Resource    string   `hcl:"resource,label"`
	Load        *float64 `hcl:"load,optional"` // percent, default 100, may exceed it
	Responsible bool     `hcl:"responsible,optional"`
	Function    string   `hcl:"function,optional"`
}

// propertyBlock sets a custom property value on a task. The value keeps its
// native HCL type and is converted against the property's declared type.
type propertyBlock struct {
	Property string    `hcl:"property,label"`
	Value    cty.Value `hcl:"value"`
}

type taskPropertyBlock struct {
	Name    string     `hcl:"name,label"`
	Type    string     `hcl:"type"` // text | int | boolean | date | double
	Default *cty.Value `hcl:"default,optional"`
}

type resourceBlock struct {
	Name     string           `hcl:"name,label"`
	ID       *int             `hcl:"id,optional"`
	Function string           `hcl:"function,optional"`
	Contacts string           `hcl:"contacts,optional"`
	Phone    string           `hcl:"phone,optional"`
	Rate     float64          `hcl:"rate,optional"`
	Vacation []*vacationBlock `hcl:"vacation,block"`
}

type vacationBlock struct {
	Start string `hcl:"start"`
	End   string `hcl:"end"`
}

type roleBlock struct {
	Name string `hcl:"name,label"`
	ID   *int   `hcl:"id,optional"`
}
