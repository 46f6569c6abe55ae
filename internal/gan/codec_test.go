package gan

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/graph"
	"github.com/vk/ganttgen/internal/model"
)

func datePtr(s string) *calendar.Date {
	d := calendar.MustDate(s)
	return &d
}

// resolvedProject is a fully scheduled fixture exercising every schema
// feature: a summary with children, a milestone, all relation hardnesses,
// custom properties, costs, notes, links, resources, roles, allocations,
// and vacations.
func resolvedProject(t *testing.T) *model.Project {
	t.Helper()

	p := model.NewProject("Release 1.0", calendar.MustDate("2025-10-01"))
	p.Company = "Acme"
	p.WebLink = "https://acme.example"
	p.Description = "Quarterly release plan"

	p.Properties = []model.PropertyDefinition{
		{ID: "tpc0", Name: "Phase", Type: model.PropertyText},
		{ID: "tpc1", Name: "Points", Type: model.PropertyInt, Default: "3"},
	}

	parent := 0
	cost := 1500.5
	p.Tasks = []*model.Task{
		{
			ID: 0, UID: "uid-0", Name: "Plan", Duration: 5,
			Start: datePtr("2025-10-01"), End: datePtr("2025-10-08"),
			Expand: true,
		},
		{
			ID: 1, UID: "uid-1", Name: "Design", Duration: 2,
			Start: datePtr("2025-10-01"), End: datePtr("2025-10-03"),
			Parent: &parent, Expand: true,
			Priority: model.PriorityHigh,
			Notes:    "Draft first, <review> & sign off",
			Properties: map[string]model.PropertyValue{
				"tpc0": {Type: model.PropertyText, Text: "alpha"},
				"tpc1": {Type: model.PropertyInt, Int: 5},
			},
		},
		{
			ID: 2, UID: "uid-2", Name: "Build", Duration: 3,
			Start: datePtr("2025-10-03"), End: datePtr("2025-10-08"),
			Parent: &parent, Expand: true,
			Color:        "#8cb6ce",
			WebLink:      "https://acme.example/build plan",
			CostIsManual: true, ManualCost: &cost,
		},
		{
			ID: 3, UID: "uid-3", Name: "Ship", Duration: 0,
			Start: datePtr("2025-10-08"), End: datePtr("2025-10-08"),
			Milestone: true, Expand: true,
		},
	}

	p.Relations = []model.Relation{
		{Predecessor: 1, Successor: 2, Type: model.FinishToStart, Hardness: model.Strong},
		{Predecessor: 2, Successor: 3, Type: model.FinishToStart, Lag: 1, Hardness: model.Rubber},
	}

	p.Resources = []*model.Resource{
		{ID: 0, Name: "Alice", Function: "Default:1", Contacts: "alice@acme.example", Phone: "555-0100", StandardRate: 75.5},
		{ID: 1, Name: "Bob", Function: "1"},
	}
	p.Roles = []model.Role{{ID: 1, Name: "Developer"}}
	p.Allocations = []model.Allocation{
		{TaskID: 1, ResourceID: 0, Function: "Default:1", Responsible: true, Load: 100},
		{TaskID: 2, ResourceID: 1, Function: "1", Load: 150},
	}
	p.Vacations = []model.Vacation{
		{ResourceID: 0, Start: calendar.MustDate("2025-10-20"), End: calendar.MustDate("2025-10-24")},
	}

	require.NoError(t, p.Validate())
	return p
}

func encodeToString(t *testing.T, p *model.Project) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))
	return buf.String()
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	original := resolvedProject(t)
	out := encodeToString(t, original)

	decoded, err := Decode(strings.NewReader(out))
	require.NoError(t, err)

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("project changed across encode/decode (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("header and project attributes", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
		assert.Contains(t, out, `name="Release 1.0"`)
		assert.Contains(t, out, `view-date="2025-10-01"`)
		assert.Contains(t, out, `version="3.2.3200"`)
		assert.Contains(t, out, `locale="en_US"`)
		assert.Contains(t, out, `gantt-divider-location="300"`)
	})

	t.Run("standard week marks weekends non-working", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `sun="1" mon="0" tue="0" wed="0" thu="0" fri="0" sat="1"`)
	})

	t.Run("dependency lives on the predecessor", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		// Task 1 carries the edge naming its successor task 2.
		assert.Contains(t, out, `<depend id="2" type="2" difference="0" hardness="Strong"`)
		assert.Contains(t, out, `<depend id="3" type="2" difference="1" hardness="Rubber"`)
	})

	t.Run("relation type codes", func(t *testing.T) {
		t.Parallel()
		p := model.NewProject("Types", calendar.MustDate("2025-10-01"))
		p.Tasks = []*model.Task{
			{ID: 0, UID: "u0", Name: "a", Duration: 1, Start: datePtr("2025-10-01"), End: datePtr("2025-10-02")},
			{ID: 1, UID: "u1", Name: "b", Duration: 1, Start: datePtr("2025-10-02"), End: datePtr("2025-10-03")},
			{ID: 2, UID: "u2", Name: "c", Duration: 1, Start: datePtr("2025-10-03"), End: datePtr("2025-10-06")},
			{ID: 3, UID: "u3", Name: "d", Duration: 1, Start: datePtr("2025-10-06"), End: datePtr("2025-10-07")},
			{ID: 4, UID: "u4", Name: "e", Duration: 1, Start: datePtr("2025-10-07"), End: datePtr("2025-10-08")},
		}
		p.Relations = []model.Relation{
			{Predecessor: 0, Successor: 4, Type: model.StartToStart, Hardness: model.Strong},
			{Predecessor: 1, Successor: 4, Type: model.FinishToStart, Hardness: model.Strong},
			{Predecessor: 2, Successor: 4, Type: model.FinishToFinish, Hardness: model.Strong},
			{Predecessor: 3, Successor: 4, Type: model.StartToFinish, Hardness: model.Strong},
		}

		out := encodeToString(t, p)
		assert.Contains(t, out, `<depend id="4" type="1"`)
		assert.Contains(t, out, `<depend id="4" type="2"`)
		assert.Contains(t, out, `<depend id="4" type="3"`)
		assert.Contains(t, out, `<depend id="4" type="4"`)
	})

	t.Run("priority codes", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		// High is code 2; Normal priority tasks carry no attribute at all.
		assert.Contains(t, out, `priority="2"`)
		assert.Equal(t, 1, strings.Count(out, "priority="))
	})

	t.Run("notes are CDATA", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `<![CDATA[Draft first, <review> & sign off]]>`)
	})

	t.Run("web link is percent encoded", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `webLink="https%3A%2F%2Facme.example%2Fbuild%20plan"`)
	})

	t.Run("manual cost attributes", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `cost-manual-value="1500.5"`)
		assert.Contains(t, out, `cost-calculated="false"`)
		// Calculated-cost tasks carry neither attribute.
		assert.Equal(t, 1, strings.Count(out, "cost-manual-value="))
	})

	t.Run("builtin and custom property definitions", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `id="tpd0"`)
		assert.Contains(t, out, `id="tpd9"`)
		assert.Contains(t, out, `id="tpc1" name="Points" type="custom" valuetype="int" defaultvalue="3"`)
		assert.Contains(t, out, `<customproperty taskproperty-id="tpc0" value="alpha"`)
	})

	t.Run("overallocation survives", func(t *testing.T) {
		t.Parallel()
		out := encodeToString(t, resolvedProject(t))
		assert.Contains(t, out, `load="150"`)
	})

	t.Run("unresolved task is an encoding error", func(t *testing.T) {
		t.Parallel()
		p := model.NewProject("Unresolved", calendar.MustDate("2025-10-01"))
		p.Tasks = []*model.Task{{ID: 0, UID: "u0", Name: "a", Duration: 1}}

		var buf bytes.Buffer
		err := Encode(&buf, p)
		require.ErrorIs(t, err, ErrEncoding)
	})

	t.Run("invalid project never reaches the writer", func(t *testing.T) {
		t.Parallel()
		p := resolvedProject(t)
		p.Tasks[1].Progress = 400

		var buf bytes.Buffer
		err := Encode(&buf, p)
		require.ErrorIs(t, err, model.ErrValidation)
		assert.Zero(t, buf.Len())
	})
}

const minimalDocHead = `<?xml version="1.0" encoding="UTF-8"?>
<project name="T" view-date="2025-10-01" version="3.2.3200" locale="en_US" gantt-divider-location="300" resource-divider-location="300">
  <description/>
  <calendars>
    <day-types><day-type id="0"/><day-type id="1"/></day-types>
    <default-week id="1" name="default" sun="1" mon="0" tue="0" wed="0" thu="0" fri="0" sat="1"/>
  </calendars>
`

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("missing hardness defaults to Strong", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true">
      <depend id="1" type="2" difference="0"/>
    </task>
    <task id="1" uid="u1" name="b" meeting="false" start="2025-10-02" duration="1" complete="0" expand="true"/>
  </tasks>
</project>`

		p, err := Decode(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, p.Relations, 1)
		assert.Equal(t, model.Strong, p.Relations[0].Hardness)
		assert.Equal(t, 0, p.Relations[0].Predecessor)
		assert.Equal(t, 1, p.Relations[0].Successor)
	})

	t.Run("end date is recomputed from duration", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="5" complete="0" expand="true"/>
  </tasks>
</project>`

		p, err := Decode(strings.NewReader(doc))
		require.NoError(t, err)
		require.NotNil(t, p.Tasks[0].End)
		assert.Equal(t, "2025-10-08", p.Tasks[0].End.String())
	})

	t.Run("unknown relation type code", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true">
      <depend id="1" type="7" difference="0" hardness="Strong"/>
    </task>
    <task id="1" uid="u1" name="b" meeting="false" start="2025-10-02" duration="1" complete="0" expand="true"/>
  </tasks>
</project>`

		_, err := Decode(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrDecoding)
	})

	t.Run("invalid week mark", func(t *testing.T) {
		t.Parallel()
		doc := strings.Replace(minimalDocHead, `mon="0"`, `mon="2"`, 1) + `
  <tasks><taskproperties/></tasks>
</project>`

		_, err := Decode(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrDecoding)
	})

	t.Run("unknown custom property reference", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true">
      <customproperty taskproperty-id="tpc5" value="x"/>
    </task>
  </tasks>
</project>`

		_, err := Decode(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrDecoding)
	})

	t.Run("cyclic relations are rejected", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true">
      <depend id="1" type="2" difference="0" hardness="Strong"/>
    </task>
    <task id="1" uid="u1" name="b" meeting="false" start="2025-10-02" duration="1" complete="0" expand="true">
      <depend id="0" type="2" difference="0" hardness="Strong"/>
    </task>
  </tasks>
</project>`

		_, err := Decode(strings.NewReader(doc))
		require.ErrorIs(t, err, graph.ErrCycle)
		var cycleErr *graph.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []int{0, 1, 0}, cycleErr.Path)
	})

	t.Run("duplicate task ids fail validation", func(t *testing.T) {
		t.Parallel()
		doc := minimalDocHead + `
  <tasks>
    <taskproperties/>
    <task id="0" uid="u0" name="a" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true"/>
    <task id="0" uid="u1" name="b" meeting="false" start="2025-10-01" duration="1" complete="0" expand="true"/>
  </tasks>
</project>`

		_, err := Decode(strings.NewReader(doc))
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("malformed XML", func(t *testing.T) {
		t.Parallel()
		_, err := Decode(strings.NewReader("<project"))
		require.ErrorIs(t, err, ErrDecoding)
	})
}
