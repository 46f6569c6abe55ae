// Package graph builds and validates the two directed structures a project
// carries: the relation graph over task ids and the task ownership tree.
// The two are structurally similar but semantically distinct, so each has
// its own arena-plus-index type and its own cycle validator; they never
// share traversal state.
package graph

import (
	"container/heap"
	"fmt"
	"sort"
)

// Graph is the relation graph: an edge runs from a predecessor task to
// each of its successors. Node identity is the numeric task id; adjacency
// is kept over dense arena indices with ids sorted ascending so every
// traversal is deterministic.
type Graph struct {
	ids   []int       // ascending task ids, arena order
	index map[int]int // id -> arena index
	out   [][]int     // successor arena indices, ascending by id
	in    [][]int     // predecessor arena indices, ascending by id
}

// New creates a graph over the given task ids. Duplicate ids are rejected.
func New(ids []int) (*Graph, error) {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)

	g := &Graph{
		ids:   sorted,
		index: make(map[int]int, len(sorted)),
		out:   make([][]int, len(sorted)),
		in:    make([][]int, len(sorted)),
	}
	for i, id := range sorted {
		if _, ok := g.index[id]; ok {
			return nil, fmt.Errorf("duplicate task id %d", id)
		}
		g.index[id] = i
	}
	return g, nil
}

// AddEdge records a predecessor -> successor relation. Both ids must exist
// and self-edges are rejected.
func (g *Graph) AddEdge(pred, succ int) error {
	if pred == succ {
		return fmt.Errorf("self-referential relation on task %d", pred)
	}
	pi, ok := g.index[pred]
	if !ok {
		return fmt.Errorf("predecessor task %d not found", pred)
	}
	si, ok := g.index[succ]
	if !ok {
		return fmt.Errorf("successor task %d not found", succ)
	}
	g.out[pi] = insertSorted(g.out[pi], si)
	g.in[si] = insertSorted(g.in[si], pi)
	return nil
}

// insertSorted keeps adjacency lists ascending and free of duplicates.
func insertSorted(list []int, v int) []int {
	pos := sort.SearchInts(list, v)
	if pos < len(list) && list[pos] == v {
		return list
	}
	list = append(list, 0)
	copy(list[pos+1:], list[pos:])
	list[pos] = v
	return list
}

// Validate proves the graph acyclic, returning a CycleError carrying one
// deterministic cycle path otherwise.
func (g *Graph) Validate() error {
	if path := findCycle(len(g.ids), g.out); path != nil {
		ids := make([]int, len(path))
		for i, idx := range path {
			ids[i] = g.ids[idx]
		}
		return &CycleError{Path: ids}
	}
	return nil
}

// TopoOrder returns a deterministic topological ordering of the task ids:
// Kahn's algorithm with the ready queue a min-heap by id, so ties always
// break toward the smallest id. Fails with a CycleError when no full
// ordering exists.
func (g *Graph) TopoOrder() ([]int, error) {
	indeg := make([]int, len(g.ids))
	for i := range g.in {
		indeg[i] = len(g.in[i])
	}

	ready := &intMinHeap{}
	heap.Init(ready)
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]int, 0, len(g.ids))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, g.ids[i])
		for _, j := range g.out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				heap.Push(ready, j)
			}
		}
	}

	if len(order) != len(g.ids) {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		return nil, &CycleError{}
	}
	return order, nil
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
