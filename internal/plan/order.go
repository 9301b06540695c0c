package plan

import (
	"fmt"
	"sort"
)

// IntegrityError reports malformed parent/child data: a duplicate or
// missing root, a duplicate step id, a parent reference to a
// non-existent id, or steps unreachable from the root (a cycle).
type IntegrityError struct {
	Reason string
	IDs    []int
}

func (e *IntegrityError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("plan tree integrity: %s", e.Reason)
	}
	return fmt.Sprintf("plan tree integrity: %s (id %v)", e.Reason, e.IDs)
}

// OrderMap holds the derived execution order for one group: for every
// step id, its parent id and its order rank in [1, N]. The step that
// physically completes first has order 1; the root has order N.
type OrderMap struct {
	steps map[int]Step
	order map[int]int
}

// BuildOrder reconstructs the execution order for one group of steps.
//
// The tree is linearized by a depth-first traversal from the root
// (id 0), visiting each node's children in descending id order, and the
// visitation sequence v = 1..N is reversed into order = N+1-v. Children
// therefore rank before their parents, and siblings visited in
// descending-id order finish in ascending execution order.
func BuildOrder(steps []Step) (*OrderMap, error) {
	if len(steps) == 0 {
		return nil, &IntegrityError{Reason: "no steps"}
	}

	byID := make(map[int]Step, len(steps))
	for _, s := range steps {
		if _, dup := byID[s.ID]; dup {
			return nil, &IntegrityError{Reason: "duplicate step id", IDs: []int{s.ID}}
		}
		byID[s.ID] = s
	}

	root, ok := byID[0]
	if !ok {
		return nil, &IntegrityError{Reason: "missing root step (id 0)"}
	}
	if root.ParentID != NoParent {
		return nil, &IntegrityError{Reason: "root step has a parent", IDs: []int{root.ParentID}}
	}

	// Adjacency map parent -> children, sorted descending so the
	// explicit-stack traversal below pops them highest-id first.
	children := make(map[int][]int, len(steps))
	for _, s := range steps {
		if s.ID == 0 {
			continue
		}
		if s.ParentID == NoParent {
			return nil, &IntegrityError{Reason: "second root step", IDs: []int{s.ID}}
		}
		if _, ok := byID[s.ParentID]; !ok {
			return nil, &IntegrityError{Reason: "dangling parent reference", IDs: []int{s.ID, s.ParentID}}
		}
		children[s.ParentID] = append(children[s.ParentID], s.ID)
	}

	n := len(steps)
	order := make(map[int]int, n)
	stack := []int{0}
	visit := 0
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit++
		order[id] = n + 1 - visit

		// Push ascending so the highest id is visited next.
		kids := children[id]
		sort.Ints(kids)
		stack = append(stack, kids...)
	}

	if visit != n {
		var stranded []int
		for _, s := range steps {
			if _, ok := order[s.ID]; !ok {
				stranded = append(stranded, s.ID)
			}
		}
		sort.Ints(stranded)
		return nil, &IntegrityError{Reason: "steps unreachable from root", IDs: stranded}
	}

	return &OrderMap{steps: byID, order: order}, nil
}

// Len returns N, the number of steps in the group. The largest order
// rank equals Len.
func (m *OrderMap) Len() int { return len(m.order) }

// Order returns the execution rank for a step id.
func (m *OrderMap) Order(id int) (int, bool) {
	o, ok := m.order[id]
	return o, ok
}

// Step returns the catalog step for an id.
func (m *OrderMap) Step(id int) (Step, bool) {
	s, ok := m.steps[id]
	return s, ok
}
