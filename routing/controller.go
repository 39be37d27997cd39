// SPDX-License-Identifier: MIT

package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/matrix"
	"github.com/henghenghahei849/gym-flock/vrp"
)

// Controller decides robot actions. Create it with New.
type Controller struct {
	opts Options
	log  *slog.Logger

	m        *gridgraph.Map
	fp       gridgraph.Fingerprint
	cost     *matrix.Dense
	prev     *matrix.IntDense
	diameter float64

	plan [][]int // nil when no plan is cached
}

// New returns a Controller configured by opts.
func New(opts ...Option) (*Controller, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return &Controller{opts: o, log: o.Logger}, nil
}

// Options returns the effective options.
func (c *Controller) Options() Options { return c.opts }

// Invalidate drops the matrices and the plan.
func (c *Controller) Invalidate() {
	c.m, c.fp, c.cost, c.prev, c.diameter = nil, gridgraph.Fingerprint{}, nil, nil, 0
	c.plan = nil
}

// SetSolver replaces the plan solver and drops the cached plan. Panics on
// nil.
func (c *Controller) SetSolver(s vrp.Solver) {
	if s == nil {
		panic("routing: SetSolver(nil)")
	}
	c.opts.Solver = s
	c.plan = nil
}

// ResetPlan drops the cached plan only.
func (c *Controller) ResetPlan() { c.plan = nil }

// Plan returns a copy of the cached plan in target ids, or nil.
func (c *Controller) Plan() [][]int {
	if c.plan == nil {
		return nil
	}
	out := make([][]int, len(c.plan))
	for i, r := range c.plan {
		out[i] = append([]int{}, r...)
	}
	return out
}

// Diameter returns the largest finite travel time of the current matrices.
func (c *Controller) Diameter() float64 { return c.diameter }

// Matrices returns the travel-time and predecessor matrices of m, computing
// them when m differs from the cached map.
func (c *Controller) Matrices(m *gridgraph.Map) (*matrix.Dense, *matrix.IntDense, error) {
	if m == nil {
		return nil, nil, fmt.Errorf("%w: nil map", ErrStateShape)
	}
	if m == c.m && c.cost != nil {
		return c.cost, c.prev, nil
	}
	fp := m.Fingerprint()
	if fp == c.fp && c.cost != nil {
		c.m = m
		return c.cost, c.prev, nil
	}
	cost, prev, err := matrix.TimeMatrix(m.Motion,
		matrix.WithHorizon(c.opts.Horizon),
		matrix.WithMaxCost(c.opts.MaxCost),
		matrix.WithMethod(c.opts.Method))
	if err != nil {
		return nil, nil, fmt.Errorf("Matrices: %w", err)
	}
	c.m, c.fp, c.cost, c.prev = m, fp, cost, prev
	c.diameter = matrix.Diameter(cost, c.opts.MaxCost)
	c.plan = nil
	c.log.Debug("time matrix rebuilt",
		"targets", m.NumTargets(),
		"fingerprint", fp.String(),
		"horizon", c.opts.Horizon,
		"diameter", c.diameter)
	return cost, prev, nil
}

// Greedy returns, per robot, the cheapest unvisited discovered target, the
// lowest target id on ties, or NoTarget when every candidate costs MaxCost.
func (c *Controller) Greedy(s State) ([]int, error) {
	if err := c.checkState(s); err != nil {
		return nil, err
	}
	cost, _, err := c.Matrices(s.Map)
	if err != nil {
		return nil, err
	}
	return c.greedy(s, cost), nil
}

func (c *Controller) greedy(s State, cost *matrix.Dense) []int {
	out := make([]int, len(s.Current))
	for r, cur := range s.Current {
		best, bestC := NoTarget, c.opts.MaxCost
		for t, v := range cost.Row(cur) {
			if s.Visited[t] || (s.Discovered != nil && !s.Discovered[t]) {
				continue
			}
			if v < bestC {
				best, bestC = t, v
			}
		}
		out[r] = best
	}
	return out
}

// Decide returns one action index per robot under policy. resetPlan forces
// a new plan before a Planned decision.
func (c *Controller) Decide(ctx context.Context, s State, policy Policy, resetPlan bool) ([]int, error) {
	if err := c.checkState(s); err != nil {
		return nil, err
	}
	if policy == Random {
		k := s.Actions.K()
		return lo.Times(len(s.Current), func(int) int { return c.opts.Rand.Intn(k) }), nil
	}

	cost, prev, err := c.Matrices(s.Map)
	if err != nil {
		return nil, err
	}
	targets := c.greedy(s, cost)
	switch policy {
	case Greedy:
	case Planned:
		if targets, err = c.follow(ctx, s, cost, targets, resetPlan); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: policy %v", ErrOptionViolation, policy)
	}
	return c.translate(s, prev, targets)
}

// follow advances the cached plan and returns the next waypoint per robot,
// falling back to greedy where a route is exhausted.
func (c *Controller) follow(ctx context.Context, s State, cost *matrix.Dense, greedy []int, reset bool) ([]int, error) {
	if c.plan == nil || c.opts.Horizon > matrix.Unbounded || reset {
		plan, err := c.solve(ctx, s, cost)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return greedy, nil
		}
		c.plan = plan
	}

	out := make([]int, len(s.Current))
	for r, cur := range s.Current {
		route := c.plan[r]
		if len(route) > 0 && route[0] == cur {
			route = route[1:]
		}
		c.plan[r] = route
		if len(route) == 0 {
			out[r] = greedy[r]
		} else {
			out[r] = route[0]
		}
	}
	return out, nil
}

// solve asks the solver for a new plan. A nil plan without error means the
// caller should fall back to greedy for this decision.
func (c *Controller) solve(ctx context.Context, s State, cost *matrix.Dense) ([][]int, error) {
	horizon := s.EpisodeLength
	if c.opts.Horizon > matrix.Unbounded {
		horizon = min(c.opts.Horizon, s.EpisodeLength-s.Step)
	}
	in := vrp.Input{
		Cost:              cost,
		Starts:            s.Current,
		NeedVisit:         make([]bool, len(s.Visited)),
		Visited:           s.Visited,
		Horizon:           max(horizon, 0),
		PenaltyMultiplier: c.opts.PenaltyMultiplier,
	}
	for t, v := range s.Visited {
		in.NeedVisit[t] = !v && (s.Discovered == nil || s.Discovered[t])
	}
	dm, err := vrp.BuildDataModel(in)
	if err != nil {
		return nil, fmt.Errorf("Decide: %w", err)
	}

	sctx := ctx
	if c.opts.SolverTimeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, c.opts.SolverTimeout)
		defer cancel()
	}
	plan, err := c.opts.Solver.Solve(sctx, dm)
	switch {
	case errors.Is(err, vrp.ErrSolverUnavailable), errors.Is(err, vrp.ErrBadInput):
		return nil, fmt.Errorf("Decide: %w", err)
	case err != nil && ctx.Err() != nil:
		return nil, fmt.Errorf("Decide: %w", ctx.Err())
	case err != nil:
		c.log.Warn("route solver failed, using greedy targets", "step", s.Step, "error", err)
		c.plan = nil
		return nil, nil
	case len(plan) != len(s.Current):
		c.log.Warn("route solver returned wrong vehicle count, using greedy targets",
			"step", s.Step, "routes", len(plan), "robots", len(s.Current))
		c.plan = nil
		return nil, nil
	}
	c.log.Debug("route plan computed",
		"step", s.Step,
		"horizon", dm.Horizon,
		"planned", lo.SumBy(plan, func(r []int) int { return len(r) }))
	return plan, nil
}

// translate maps target decisions to action indices.
func (c *Controller) translate(s State, prev *matrix.IntDense, targets []int) ([]int, error) {
	k := s.Actions.K()
	out := make([]int, len(targets))
	for r, t := range targets {
		cur := s.Current[r]
		switch {
		case t == cur:
			out[r] = s.Actions.Stay(r)
			continue
		case t == NoTarget:
			out[r] = c.opts.Rand.Intn(k)
			continue
		}
		hop := matrix.NextHop(prev, cur, t)
		if hop == matrix.NoPath {
			out[r] = c.opts.Rand.Intn(k)
			continue
		}
		a := lo.IndexOf(s.Actions.Row(r), hop)
		if a < 0 {
			return nil, fmt.Errorf("%w: robot %d at %d, hop %d", ErrNotNeighbor, r, cur, hop)
		}
		out[r] = a
	}
	return out, nil
}

func (c *Controller) checkState(s State) error {
	switch {
	case s.Map == nil || s.Actions == nil:
		return fmt.Errorf("%w: nil map or action table", ErrStateShape)
	case len(s.Visited) != s.Map.NumTargets():
		return fmt.Errorf("%w: %d visited flags for %d targets", ErrStateShape, len(s.Visited), s.Map.NumTargets())
	case s.Discovered != nil && len(s.Discovered) != s.Map.NumTargets():
		return fmt.Errorf("%w: %d discovered flags for %d targets", ErrStateShape, len(s.Discovered), s.Map.NumTargets())
	case s.Actions.Robots() != len(s.Current):
		return fmt.Errorf("%w: action table for %d robots, %d positions", ErrStateShape, s.Actions.Robots(), len(s.Current))
	}
	for r, cur := range s.Current {
		if cur < 0 || cur >= s.Map.NumTargets() {
			return fmt.Errorf("%w: robot %d at target %d", ErrStateShape, r, cur)
		}
	}
	return nil
}
