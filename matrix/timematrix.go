// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"github.com/henghenghahei849/gym-flock/bfs"
	"github.com/henghenghahei849/gym-flock/core"
)

// TimeMatrix computes the n×n travel-time matrix and the predecessor matrix
// of g, where n = g.Order().
//
// Stage 1 (Validate): graph non-nil, options valid, n > 0.
// Stage 2 (Execute):  run the selected Method up to the horizon.
// Stage 3 (Finalize): clamp unreached cells to MaxCost.
//
// Horizon semantics: after the run, cost[o][d] is exact whenever d is at most
// H hops from o; every other off-diagonal pair holds MaxCost and NoPath.
func TimeMatrix(g *core.Graph, opts ...Option) (*Dense, *IntDense, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, nil, o.err
	}
	n := g.Order()
	cost, err := Filled(n, n, math.Inf(1))
	if err != nil {
		return nil, nil, err
	}
	prev, err := NewIntDense(n, n, NoPath)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		cost.data[i*n+i] = 0
	}

	switch o.Method {
	case BreadthFirst:
		if err = breadthFirst(g, o, cost, prev); err != nil {
			return nil, nil, err
		}
	default:
		relax(g, o, cost, prev)
	}

	for i, v := range cost.data {
		if math.IsInf(v, 1) {
			cost.data[i] = o.MaxCost
		}
	}
	return cost, prev, nil
}

// relax runs synchronous rounds: each round reads the costs left by the
// previous round, so round k extends paths by exactly one hop.
//
// Complexity: O(rounds·E·n) time, O(n²) extra memory for the round snapshot.
func relax(g *core.Graph, o Options, cost *Dense, prev *IntDense) {
	n := cost.r
	edges := g.Edges()
	snapshot := make([]float64, len(cost.data))
	for round := 0; o.Horizon == Unbounded || round < o.Horizon; round++ {
		copy(snapshot, cost.data)
		changed := false
		for _, e := range edges {
			for origin := 0; origin < n; origin++ {
				via := snapshot[origin*n+e.From] + o.EdgeTime
				cell := origin*n + e.To
				if via < cost.data[cell] {
					cost.data[cell] = via
					prev.data[cell] = e.From
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// breadthFirst fills each origin row from a depth-limited BFS.
func breadthFirst(g *core.Graph, o Options, cost *Dense, prev *IntDense) error {
	n := cost.r
	depth := 0 // bfs: 0 means no limit
	if o.Horizon != Unbounded {
		if o.Horizon == 0 {
			return nil
		}
		depth = o.Horizon
	}
	for origin := 0; origin < n; origin++ {
		res, err := bfs.BFS(g, origin, bfs.WithMaxDepth(depth))
		if err != nil {
			return err
		}
		row, prow := cost.Row(origin), prev.Row(origin)
		for _, v := range res.Order {
			if v == origin {
				continue
			}
			row[v] = float64(res.Depth[v]) * o.EdgeTime
			prow[v] = res.Parent[v]
		}
	}
	return nil
}

// Diameter returns the largest entry of cost strictly below maxCost, or 0
// when no pair is reachable.
func Diameter(cost *Dense, maxCost float64) float64 {
	best := 0.0
	for _, v := range cost.data {
		if v < maxCost && v > best {
			best = v
		}
	}
	return best
}

// Path walks prev backwards from dest and returns origin…dest, or nil when
// dest is unreachable. Path(o, o) is [o].
func Path(prev *IntDense, origin, dest int) []int {
	if origin == dest {
		return []int{origin}
	}
	row := prev.Row(origin)
	var rev []int
	for cur := dest; cur != origin; cur = row[cur] {
		if cur == NoPath || len(rev) > prev.c {
			return nil
		}
		rev = append(rev, cur)
	}
	rev = append(rev, origin)
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// NextHop returns the neighbour of origin that starts a shortest path to
// dest, or NoPath when dest is unreachable within the horizon or equal to
// origin. Motion graphs are undirected, so the predecessor of origin on the
// path from dest is that neighbour: a single O(1) lookup.
func NextHop(prev *IntDense, origin, dest int) int {
	if origin == dest {
		return NoPath
	}
	return prev.data[dest*prev.c+origin]
}
