package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrCycle marks a cycle in the relation graph or the ownership tree.
var ErrCycle = errors.New("cycle detected")

// CycleError reports one cycle as a closed path of task ids: the first and
// last entries are the same task. The path is deterministic for identical
// input.
type CycleError struct {
	Path []int
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// findCycle runs a three-color depth-first search over the adjacency lists
// and reconstructs a single closed path on the first back-edge. Nodes are
// visited in ascending arena order and adjacency lists are sorted, so a
// given graph always yields the same witness. Returns nil when acyclic.
func findCycle(n int, out [][]int) []int {
	const (
		white = iota // unvisited
		gray         // in the current recursion stack
		black        // fully explored
	)

	color := make([]int, n)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int

	var visit func(u int) bool
	visit = func(u int) bool {
		color[u] = gray
		for _, v := range out[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if visit(v) {
					return true
				}
			case gray:
				// Back-edge u -> v closes a cycle; walk parents from u back
				// to v and emit v ... u -> v in forward order.
				rev := []int{u}
				for cur := parent[u]; cur != -1 && rev[len(rev)-1] != v; cur = parent[cur] {
					rev = append(rev, cur)
				}
				if rev[len(rev)-1] != v {
					rev = append(rev, v)
				}
				cycle = make([]int, 0, len(rev)+1)
				for i := len(rev) - 1; i >= 0; i-- {
					cycle = append(cycle, rev[i])
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for u := 0; u < n; u++ {
		if color[u] == white && visit(u) {
			return cycle
		}
	}
	return nil
}
