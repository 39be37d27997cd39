// SPDX-License-Identifier: MIT

package vrp

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// eps is the minimum strict improvement accepted by every stage.
const eps = 1e-9

// Heuristic is a construction-plus-local-search Solver. The zero value runs
// one deterministic pass.
type Heuristic struct {
	// Restarts adds randomized constructions on top of the deterministic one.
	Restarts int
	// Seed drives the restarts; 0 selects a fixed default.
	Seed int64
	// TwoOptMaxIters caps accepted 2-opt moves per route; 0 means unlimited.
	TwoOptMaxIters int
}

// Solve implements Solver.
//
// A cancelled ctx stops local search early and skips remaining restarts;
// Solve fails with ctx's error only when it fires before the first plan is
// built.
//
// Complexity: O((R+1)·(V·T²·T + T³)) worst case for R restarts, V vehicles
// and T targets; routes are short under a finite horizon.
func (h Heuristic) Solve(ctx context.Context, dm *DataModel) ([][]int, error) {
	if err := dm.validate(); err != nil {
		return nil, err
	}
	if h.Restarts < 0 || h.TwoOptMaxIters < 0 {
		return nil, fmt.Errorf("%w: restarts=%d two-opt iterations=%d", ErrBadInput, h.Restarts, h.TwoOptMaxIters)
	}
	base := rngFromSeed(h.Seed)

	var best *plan
	for r := 0; r <= h.Restarts; r++ {
		if err := ctx.Err(); err != nil {
			if best == nil {
				return nil, fmt.Errorf("Solve: %w", err)
			}
			break
		}
		var rng *rand.Rand
		if r > 0 {
			rng = deriveRNG(base, uint64(r))
		}
		p := newPlan(dm)
		p.construct(rng)
		p.insertDropped(ctx)
		p.improve(ctx, h.TwoOptMaxIters)
		if best == nil || p.objective() < best.objective()-eps {
			best = p
		}
	}
	return best.targets(), nil
}

// plan is one candidate solution in node indices.
type plan struct {
	dm     *DataModel
	n      int
	w      []float64 // w[u*n+v] = cost of arc u→v
	routes [][]int   // routes[v][0] is the start node of vehicle v
	times  []float64 // accumulated time per route, depot leg included
	used   []bool
}

func newPlan(dm *DataModel) *plan {
	n := dm.Nodes()
	p := &plan{
		dm:     dm,
		n:      n,
		w:      make([]float64, 0, n*n),
		routes: make([][]int, dm.Vehicles),
		times:  make([]float64, dm.Vehicles),
		used:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		p.w = append(p.w, dm.Cost.Row(i)...)
	}
	p.used[Depot] = true
	for v, s := range dm.Starts {
		p.routes[v] = []int{s}
		p.times[v] = p.arc(Depot, s)
		p.used[s] = true
	}
	return p
}

func (p *plan) arc(u, v int) float64 { return p.w[u*p.n+v] }

// open reports whether node j is still unassigned and worth visiting.
func (p *plan) open(j int) bool { return !p.used[j] && p.dm.Penalties[j] > 0 }

func (p *plan) fits(v int, extra float64) bool {
	return p.times[v]+extra <= float64(p.dm.Horizon)+eps
}

// construct repeatedly appends the cheapest feasible arc leaving any route
// end. An arc is taken only when it costs less than dropping its head.
// rng, when non-nil, shuffles the scan order and thereby the tie-breaking.
func (p *plan) construct(rng *rand.Rand) {
	vehicles := order(p.dm.Vehicles, rng)
	nodes := order(p.n, rng)
	for {
		bestV, bestJ, bestC := -1, -1, math.Inf(1)
		for _, v := range vehicles {
			last := p.routes[v][len(p.routes[v])-1]
			for _, j := range nodes {
				if !p.open(j) {
					continue
				}
				c := p.arc(last, j)
				if c >= p.dm.Penalties[j] || !p.fits(v, c) {
					continue
				}
				if c < bestC {
					bestV, bestJ, bestC = v, j, c
				}
			}
		}
		if bestV < 0 {
			return
		}
		p.routes[bestV] = append(p.routes[bestV], bestJ)
		p.times[bestV] += bestC
		p.used[bestJ] = true
	}
}

// insertDropped inserts open nodes at their cheapest feasible position until
// no detour is cheaper than the node's penalty.
func (p *plan) insertDropped(ctx context.Context) {
	for ctx.Err() == nil {
		bestV, bestPos, bestJ := -1, 0, -1
		bestD := math.Inf(1)
		for j := 1; j < p.n; j++ {
			if !p.open(j) {
				continue
			}
			for v, route := range p.routes {
				for pos := 1; pos <= len(route); pos++ {
					d := p.arc(route[pos-1], j)
					if pos < len(route) {
						d += p.arc(j, route[pos]) - p.arc(route[pos-1], route[pos])
					}
					if d >= p.dm.Penalties[j] || !p.fits(v, d) {
						continue
					}
					if d < bestD {
						bestV, bestPos, bestJ, bestD = v, pos, j, d
					}
				}
			}
		}
		if bestV < 0 {
			return
		}
		route := p.routes[bestV]
		route = append(route, 0)
		copy(route[bestPos+1:], route[bestPos:])
		route[bestPos] = bestJ
		p.routes[bestV] = route
		p.times[bestV] += bestD
		p.used[bestJ] = true
	}
}

// improve runs first-improvement 2-opt on every route. The first node stays
// fixed and the tail is open, so reversing a suffix replaces one arc only.
func (p *plan) improve(ctx context.Context, maxIters int) {
	for v := range p.routes {
		accepted := 0
		for ctx.Err() == nil {
			if maxIters > 0 && accepted >= maxIters {
				break
			}
			d, i, k := p.bestReversal(p.routes[v])
			if i < 0 {
				break
			}
			reverse(p.routes[v][i : k+1])
			p.times[v] += d
			accepted++
		}
	}
}

// bestReversal returns the first segment [i..k] whose reversal shortens
// route, with its (negative) delta, or i = -1.
func (p *plan) bestReversal(route []int) (float64, int, int) {
	last := len(route) - 1
	for i := 1; i < last; i++ {
		for k := i + 1; k <= last; k++ {
			oldC := p.arc(route[i-1], route[i])
			newC := p.arc(route[i-1], route[k])
			for t := i; t < k; t++ {
				oldC += p.arc(route[t], route[t+1])
				newC += p.arc(route[t+1], route[t])
			}
			if k < last {
				oldC += p.arc(route[k], route[k+1])
				newC += p.arc(route[i], route[k+1])
			}
			if d := newC - oldC; d < -eps {
				return d, i, k
			}
		}
	}
	return 0, -1, -1
}

// objective is the total travel time plus the penalties of dropped nodes.
func (p *plan) objective() float64 {
	total := 0.0
	for _, t := range p.times {
		total += t
	}
	for j := 1; j < p.n; j++ {
		if !p.used[j] {
			total += p.dm.Penalties[j]
		}
	}
	return total
}

// targets converts routes to target indices.
func (p *plan) targets() [][]int {
	out := make([][]int, len(p.routes))
	for v, route := range p.routes {
		out[v] = make([]int, len(route))
		for i, node := range route {
			out[v][i] = node - 1
		}
	}
	return out
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
