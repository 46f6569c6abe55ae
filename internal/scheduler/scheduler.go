// Package scheduler resolves task dates from the relation graph under
// business-day arithmetic. It walks tasks in deterministic topological
// order, turns every relation into a lower bound on its successor, and
// derives summary task dates bottom-up from their children afterwards.
package scheduler

import (
	"context"
	"fmt"

	"github.com/vk/ganttgen/internal/calendar"
	"github.com/vk/ganttgen/internal/ctxlog"
	"github.com/vk/ganttgen/internal/graph"
	"github.com/vk/ganttgen/internal/model"
)

// Warning records a Rubber-hardness constraint that could not be honored.
// Scheduling proceeds with the best achievable date.
type Warning struct {
	TaskID      int
	Predecessor int
	Type        model.RelationType
	Required    calendar.Date
	Used        calendar.Date
}

func (w Warning) String() string {
	return fmt.Sprintf("rubber relation %s from task %d wants task %d to start %s, kept %s",
		w.Type, w.Predecessor, w.TaskID, w.Required, w.Used)
}

// Result carries the order tasks were scheduled in and any Rubber
// violations encountered.
type Result struct {
	Order    []int
	Warnings []Warning
}

// Schedule validates the project's two graph structures, resolves every
// leaf task's start and end date in place, then derives summary dates
// bottom-up. The project must already pass model validation.
func Schedule(ctx context.Context, p *model.Project) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]int, len(p.Tasks))
	for i, t := range p.Tasks {
		ids[i] = t.ID
	}

	tree, err := ownershipTree(p, ids)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("ownership tree: %w", err)
	}

	relations, err := relationGraph(p, ids)
	if err != nil {
		return nil, err
	}
	order, err := relations.TopoOrder()
	if err != nil {
		return nil, fmt.Errorf("relation graph: %w", err)
	}
	logger.Debug("relation graph resolved", "tasks", len(order))

	anchor, err := calendar.NextWorkingDay(p.Start, p.WorkWeek)
	if err != nil {
		return nil, err
	}

	res := &Result{Order: order}
	for _, id := range order {
		if p.IsSummary(id) {
			continue
		}
		if err := scheduleTask(p, p.TaskByID(id), anchor, res); err != nil {
			return nil, err
		}
	}
	for _, w := range res.Warnings {
		logger.Warn("rubber constraint violated", "task", w.TaskID, "predecessor", w.Predecessor, "required", w.Required.String(), "used", w.Used.String())
	}

	if err := rollUpSummaries(p, tree); err != nil {
		return nil, err
	}
	return res, nil
}

func ownershipTree(p *model.Project, ids []int) (*graph.Tree, error) {
	tree, err := graph.NewTree(ids)
	if err != nil {
		return nil, err
	}
	for _, t := range p.Tasks {
		if t.Parent == nil {
			continue
		}
		if err := tree.SetParent(t.ID, *t.Parent); err != nil {
			return nil, fmt.Errorf("ownership tree: %w", err)
		}
	}
	return tree, nil
}

func relationGraph(p *model.Project, ids []int) (*graph.Graph, error) {
	g, err := graph.New(ids)
	if err != nil {
		return nil, err
	}
	for _, r := range p.Relations {
		if err := g.AddEdge(r.Predecessor, r.Successor); err != nil {
			return nil, fmt.Errorf("relation graph: %w", err)
		}
	}
	return g, nil
}

// scheduleTask resolves one leaf task: the latest of all relation lower
// bounds and the task's own start, with End exclusive at Start plus
// duration working days.
func scheduleTask(p *model.Project, t *model.Task, anchor calendar.Date, res *Result) error {
	ww := p.WorkWeek

	base := anchor
	if t.Start != nil {
		normalized, err := calendar.NextWorkingDay(*t.Start, ww)
		if err != nil {
			return err
		}
		base = normalized
	}

	resolved := base
	for _, rel := range p.PredecessorsOf(t.ID) {
		bound, err := startBound(p, rel, t)
		if err != nil {
			return err
		}
		if t.Pinned {
			if bound.After(base) {
				if rel.Hardness == model.Strong {
					return &InfeasibleScheduleError{
						TaskID:      t.ID,
						Predecessor: rel.Predecessor,
						Type:        rel.Type,
						Pinned:      base,
						Required:    bound,
					}
				}
				res.Warnings = append(res.Warnings, Warning{
					TaskID:      t.ID,
					Predecessor: rel.Predecessor,
					Type:        rel.Type,
					Required:    bound,
					Used:        base,
				})
			}
			continue
		}
		resolved = calendar.Latest(resolved, bound)
	}

	end, err := calendar.AddWorkingDays(resolved, t.Duration, ww)
	if err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Start = &resolved
	t.End = &end
	return nil
}

// startBound converts one relation into a lower bound on the successor's
// start date. End-oriented semantics are back-solved through the
// successor's duration.
func startBound(p *model.Project, rel model.Relation, succ *model.Task) (calendar.Date, error) {
	pred := p.TaskByID(rel.Predecessor)
	if pred.Start == nil || pred.End == nil {
		return calendar.Date{}, fmt.Errorf("predecessor task %d of task %d has no resolved dates", pred.ID, succ.ID)
	}
	ww := p.WorkWeek

	switch rel.Type {
	case model.FinishToStart:
		return calendar.AddWorkingDays(*pred.End, rel.Lag, ww)
	case model.StartToStart:
		return calendar.AddWorkingDays(*pred.Start, rel.Lag, ww)
	case model.FinishToFinish:
		end, err := calendar.AddWorkingDays(*pred.End, rel.Lag, ww)
		if err != nil {
			return calendar.Date{}, err
		}
		return calendar.SubtractWorkingDays(end, succ.Duration, ww)
	case model.StartToFinish:
		end, err := calendar.AddWorkingDays(*pred.Start, rel.Lag, ww)
		if err != nil {
			return calendar.Date{}, err
		}
		return calendar.SubtractWorkingDays(end, succ.Duration, ww)
	}
	return calendar.Date{}, fmt.Errorf("unknown relation type %v", rel.Type)
}

// rollUpSummaries derives each summary task's dates from its children:
// earliest child start, latest child end, and the working-day span between
// them as duration. Summaries are never independently constrained.
func rollUpSummaries(p *model.Project, tree *graph.Tree) error {
	var rollErr error
	tree.WalkBottomUp(func(id int) {
		if rollErr != nil {
			return
		}
		children := tree.Children(id)
		if len(children) == 0 {
			return
		}
		t := p.TaskByID(id)

		var start, end calendar.Date
		for i, cid := range children {
			c := p.TaskByID(cid)
			if c.Start == nil || c.End == nil {
				rollErr = fmt.Errorf("child task %d of summary %d has no resolved dates", cid, id)
				return
			}
			if i == 0 {
				start, end = *c.Start, *c.End
				continue
			}
			if c.Start.Before(start) {
				start = *c.Start
			}
			if c.End.After(end) {
				end = *c.End
			}
		}

		span, err := calendar.WorkingDaysBetween(start, end, p.WorkWeek)
		if err != nil {
			rollErr = fmt.Errorf("summary task %d: %w", id, err)
			return
		}
		t.Start = &start
		t.End = &end
		t.Duration = span
	})
	return rollErr
}
