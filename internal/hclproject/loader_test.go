package hclproject

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/ganttgen/internal/model"
)

func loadString(t *testing.T, src string) (*model.Project, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.gantt.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))
	return NewLoader().Load(context.Background(), path, model.NewSequentialIdentity())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("full project", func(t *testing.T) {
		t.Parallel()
		p, err := loadString(t, `
project "Website" {
  start     = "2025-10-01"
  work_week = ["mon", "tue", "wed", "thu", "fri", "sat"]
  company   = "Acme"

  role "Developer" {}

  taskproperty "Phase" {
    type    = "text"
    default = "planning"
  }

  resource "Alice" {
    function = "Developer"

    vacation {
      start = "2025-10-20"
      end   = "2025-10-24"
    }
  }

  task "Design" {
    duration = 2
    priority = "high"
    notes    = "Sketch everything first"

    property "Phase" {
      value = "draft"
    }

    assign "Alice" {
      load        = 150
      responsible = true
    }
  }

  task "Build" {
    duration = 3
    cost     = 1200.5

    depend "Design" {
      lag      = 1
      hardness = "Rubber"
    }
  }

  task "Release" {
    milestone = true

    depend "Build" {}
  }

  task "Phase 1" {
    task "Sub A" {
      duration = 1
    }
    task "Sub B" {
      duration = 2
    }
  }
}
`)
		require.NoError(t, err)

		assert.Equal(t, "Website", p.Name)
		assert.Equal(t, "Acme", p.Company)
		assert.Equal(t, "2025-10-01", p.Start.String())
		assert.True(t, p.WorkWeek[time.Saturday])
		assert.False(t, p.WorkWeek[time.Sunday])

		require.Len(t, p.Roles, 1)
		assert.Equal(t, model.Role{ID: 1, Name: "Developer"}, p.Roles[0])

		require.Len(t, p.Properties, 1)
		def := p.Properties[0]
		assert.Equal(t, "tpc0", def.ID)
		assert.Equal(t, "Phase", def.Name)
		assert.Equal(t, model.PropertyText, def.Type)
		assert.Equal(t, "planning", def.Default)

		require.Len(t, p.Resources, 1)
		alice := p.Resources[0]
		assert.Equal(t, 0, alice.ID)
		assert.Equal(t, "1", alice.Function, "role names resolve to role ids")
		require.Len(t, p.Vacations, 1)
		assert.Equal(t, 0, p.Vacations[0].ResourceID)

		// Tasks get sequential ids in declaration order, depth first.
		require.Len(t, p.Tasks, 6)
		byName := map[string]*model.Task{}
		for _, task := range p.Tasks {
			byName[task.Name] = task
		}
		assert.Equal(t, 0, byName["Design"].ID)
		assert.Equal(t, 1, byName["Build"].ID)
		assert.Equal(t, 2, byName["Release"].ID)
		assert.Equal(t, 3, byName["Phase 1"].ID)
		assert.Equal(t, "uid-0", byName["Design"].UID)

		assert.Equal(t, model.PriorityHigh, byName["Design"].Priority)
		assert.Equal(t, "Sketch everything first", byName["Design"].Notes)
		require.Contains(t, byName["Design"].Properties, "tpc0")
		assert.Equal(t, "draft", byName["Design"].Properties["tpc0"].Text)

		require.NotNil(t, byName["Build"].ManualCost)
		assert.Equal(t, 1200.5, *byName["Build"].ManualCost)
		assert.True(t, byName["Build"].CostIsManual)

		assert.True(t, byName["Release"].Milestone)
		assert.Zero(t, byName["Release"].Duration)

		require.NotNil(t, byName["Sub A"].Parent)
		assert.Equal(t, 3, *byName["Sub A"].Parent)
		require.NotNil(t, byName["Sub B"].Parent)
		assert.Equal(t, 3, *byName["Sub B"].Parent)

		require.Len(t, p.Relations, 2)
		assert.Equal(t, model.Relation{
			Predecessor: 0, Successor: 1,
			Type: model.FinishToStart, Lag: 1, Hardness: model.Rubber,
		}, p.Relations[0])
		assert.Equal(t, model.Relation{
			Predecessor: 1, Successor: 2,
			Type: model.FinishToStart, Hardness: model.Strong,
		}, p.Relations[1])

		require.Len(t, p.Allocations, 1)
		alloc := p.Allocations[0]
		assert.Equal(t, 0, alloc.TaskID)
		assert.Equal(t, 0, alloc.ResourceID)
		assert.Equal(t, 150.0, alloc.Load)
		assert.True(t, alloc.Responsible)
		assert.Equal(t, "Default:1", alloc.Function)
	})

	t.Run("dependency may name a later task", func(t *testing.T) {
		t.Parallel()
		p, err := loadString(t, `
project "Forward" {
  start = "2025-10-01"

  task "First" {
    duration = 1

    depend "Second" {}
  }

  task "Second" {
    duration = 1
  }
}
`)
		require.NoError(t, err)
		require.Len(t, p.Relations, 1)
		assert.Equal(t, 1, p.Relations[0].Predecessor)
		assert.Equal(t, 0, p.Relations[0].Successor)
	})

	t.Run("unknown dependency target", func(t *testing.T) {
		t.Parallel()
		_, err := loadString(t, `
project "Bad" {
  start = "2025-10-01"

  task "Only" {
    duration = 1

    depend "Ghost" {}
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown task "Ghost"`)
	})

	t.Run("unknown property", func(t *testing.T) {
		t.Parallel()
		_, err := loadString(t, `
project "Bad" {
  start = "2025-10-01"

  task "Only" {
    duration = 1

    property "Ghost" {
      value = 1
    }
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown property "Ghost"`)
	})

	t.Run("duplicate task labels", func(t *testing.T) {
		t.Parallel()
		_, err := loadString(t, `
project "Bad" {
  start = "2025-10-01"

  task "Twice" {
    duration = 1
  }
  task "Twice" {
    duration = 1
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate task "Twice"`)
	})

	t.Run("unknown weekday", func(t *testing.T) {
		t.Parallel()
		_, err := loadString(t, `
project "Bad" {
  start     = "2025-10-01"
  work_week = ["mon", "holiday"]
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown weekday "holiday"`)
	})

	t.Run("property value converted against declared type", func(t *testing.T) {
		t.Parallel()
		_, err := loadString(t, `
project "Bad" {
  start = "2025-10-01"

  taskproperty "Points" {
    type = "int"
  }

  task "Only" {
    duration = 1

    property "Points" {
      value = "not a number"
    }
  }
}
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `property "Points"`)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Load(context.Background(), "/does/not/exist.gantt.hcl", model.NewSequentialIdentity())
		require.Error(t, err)
	})
}
