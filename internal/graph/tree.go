package graph

import (
	"fmt"
	"sort"
)

// Tree is the task ownership tree: an edge runs from a parent task to each
// task it owns. It is validated independently of the relation graph; tasks
// that relate to each other may still live anywhere in the tree, and a
// corrupt parent chain must be reported as a tree cycle, not a relation
// cycle.
type Tree struct {
	ids      []int
	index    map[int]int
	parent   []int   // arena index of parent, -1 for roots
	children [][]int // child arena indices, declaration order
}

// NewTree creates a tree over the given task ids with no parent links.
func NewTree(ids []int) (*Tree, error) {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	t := &Tree{
		ids:      sorted,
		index:    make(map[int]int, len(sorted)),
		parent:   make([]int, len(sorted)),
		children: make([][]int, len(sorted)),
	}
	for i, id := range sorted {
		if _, ok := t.index[id]; ok {
			return nil, fmt.Errorf("duplicate task id %d", id)
		}
		t.index[id] = i
		t.parent[i] = -1
	}
	return t, nil
}

// SetParent records that child is owned by parent. A task owns itself only
// through a longer chain, which Validate reports; the direct case is
// rejected here.
func (t *Tree) SetParent(child, parent int) error {
	if child == parent {
		return fmt.Errorf("task %d cannot be its own parent", child)
	}
	ci, ok := t.index[child]
	if !ok {
		return fmt.Errorf("child task %d not found", child)
	}
	pi, ok := t.index[parent]
	if !ok {
		return fmt.Errorf("parent task %d not found", parent)
	}
	if t.parent[ci] != -1 {
		return fmt.Errorf("task %d already has a parent", child)
	}
	t.parent[ci] = pi
	t.children[pi] = append(t.children[pi], ci)
	return nil
}

// Validate proves the parent/child edges acyclic using the same three-color
// search the relation graph uses, run over this structure's own edges.
func (t *Tree) Validate() error {
	down := make([][]int, len(t.ids))
	for i, kids := range t.children {
		down[i] = append([]int(nil), kids...)
		sort.Ints(down[i])
	}
	if path := findCycle(len(t.ids), down); path != nil {
		ids := make([]int, len(path))
		for i, idx := range path {
			ids[i] = t.ids[idx]
		}
		return &CycleError{Path: ids}
	}
	return nil
}

// Roots returns the ids of tasks with no parent, ascending.
func (t *Tree) Roots() []int {
	var out []int
	for i, p := range t.parent {
		if p == -1 {
			out = append(out, t.ids[i])
		}
	}
	return out
}

// Children returns the child ids of the given task in the order their
// parent links were recorded.
func (t *Tree) Children(id int) []int {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	out := make([]int, len(t.children[i]))
	for j, ci := range t.children[i] {
		out[j] = t.ids[ci]
	}
	return out
}

// WalkBottomUp visits every task post-order: all children strictly before
// their parent, roots last among their subtrees. Visit order is
// deterministic.
func (t *Tree) WalkBottomUp(visit func(id int)) {
	var walk func(i int)
	walk = func(i int) {
		for _, ci := range t.children[i] {
			walk(ci)
		}
		visit(t.ids[i])
	}
	for i, p := range t.parent {
		if p == -1 {
			walk(i)
		}
	}
}
