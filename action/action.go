// SPDX-License-Identifier: MIT

package action

import (
	"fmt"

	"github.com/henghenghahei849/gym-flock/core"
)

// Candidates builds the action table for robots located at current.
//
// Complexity: O(R·K).
func Candidates(g *core.Graph, current []int, k int) (*Table, error) {
	if k < 1 {
		return nil, ErrBadActionCount
	}
	t := &Table{k: k, current: append([]int(nil), current...), dest: make([]int, 0, len(current)*k)}
	for r, v := range current {
		nb, err := g.Neighbors(v)
		if err != nil {
			return nil, fmt.Errorf("Candidates: robot %d: %w", r, err)
		}
		if len(nb) > k {
			return nil, fmt.Errorf("%w: robot %d at node %d has %d edges, K=%d", ErrActionOverflow, r, v, len(nb), k)
		}
		t.dest = append(t.dest, nb...)
		for i := len(nb); i < k; i++ {
			t.dest = append(t.dest, v)
		}
	}
	return t, nil
}

// Dest returns the destination of action a for robot r.
func (t *Table) Dest(r, a int) (int, error) {
	if r < 0 || r >= len(t.current) {
		return 0, fmt.Errorf("%w: robot %d of %d", ErrRobotCount, r, len(t.current))
	}
	if a < 0 || a >= t.k {
		return 0, fmt.Errorf("%w: robot %d action %d, K=%d", ErrInvalidAction, r, a, t.k)
	}
	return t.dest[r*t.k+a], nil
}

// Index returns the first action of robot r leading to node, or -1.
func (t *Table) Index(r, node int) int {
	for a, d := range t.Row(r) {
		if d == node {
			return a
		}
	}
	return -1
}

// Stay returns the action index of robot r's self-loop.
func (t *Table) Stay(r int) int { return t.Index(r, t.current[r]) }

// Destinations maps one action per robot to destination nodes.
func (t *Table) Destinations(actions []int) ([]int, error) {
	if len(actions) != len(t.current) {
		return nil, fmt.Errorf("%w: got %d actions for %d robots", ErrRobotCount, len(actions), len(t.current))
	}
	out := make([]int, len(actions))
	for r, a := range actions {
		d, err := t.Dest(r, a)
		if err != nil {
			return nil, err
		}
		out[r] = d
	}
	return out, nil
}

// Resolve settles simultaneous moves. prev holds each robot's location before
// the step and dest its requested destination. It returns the locations after
// the step and the number of refused moves.
//
// Stage 1: robots with dest == prev settle in place.
// Stage 2: remaining robots in index order settle at dest, unless collisions
// is true and dest is already settled by another robot, in which case they
// settle at prev.
func Resolve(prev, dest []int, collisions bool) ([]int, int, error) {
	if len(prev) != len(dest) {
		return nil, 0, fmt.Errorf("%w: %d locations, %d destinations", ErrRobotCount, len(prev), len(dest))
	}
	const unsettled = -1
	next := make([]int, len(prev))
	for i := range next {
		next[i] = unsettled
		if dest[i] == prev[i] {
			next[i] = prev[i]
		}
	}
	blocked := 0
	for i := range next {
		if next[i] != unsettled {
			continue
		}
		if collisions && contains(next, dest[i]) {
			next[i] = prev[i]
			blocked++
			continue
		}
		next[i] = dest[i]
	}
	return next, blocked, nil
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
