// SPDX-License-Identifier: MIT

package routing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/henghenghahei849/gym-flock/action"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/matrix"
	"github.com/henghenghahei849/gym-flock/vrp"
)

var (
	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("routing: invalid option supplied")

	// ErrStateShape indicates a State whose slices disagree with its map.
	ErrStateShape = errors.New("routing: state does not match map")

	// ErrNotNeighbor indicates a next hop missing from a robot's action
	// table, which means the table was built from another graph.
	ErrNotNeighbor = errors.New("routing: next hop is not a candidate action")
)

// NoTarget marks a robot without a reachable unvisited target.
const NoTarget = -1

// Policy selects how Decide chooses targets.
type Policy int

const (
	Random Policy = iota
	Greedy
	Planned
)

// String returns the lower-case policy name.
func (p Policy) String() string {
	switch p {
	case Random:
		return "random"
	case Greedy:
		return "greedy"
	case Planned:
		return "planned"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses the String form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{Random, Greedy, Planned} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrOptionViolation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// State is the controller's view of one step. Per-target slices are indexed
// by target id.
type State struct {
	Map *gridgraph.Map
	// Current holds the target each robot is located at.
	Current []int
	Actions *action.Table
	Visited []bool
	// Discovered restricts the targets worth visiting; nil means all.
	Discovered    []bool
	Step          int
	EpisodeLength int
}

// Options configures a Controller.
type Options struct {
	Horizon           int
	MaxCost           float64
	Method            matrix.Method
	PenaltyMultiplier float64
	Solver            vrp.Solver
	// SolverTimeout bounds one Solve call; 0 disables the bound.
	SolverTimeout time.Duration
	Logger        *slog.Logger
	Rand          *rand.Rand

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns an unbounded horizon, matrix.MaxCost, relaxation,
// the default penalty multiplier, the built-in heuristic solver, no timeout,
// a discarding logger and a fixed-seed generator.
func DefaultOptions() Options {
	return Options{
		Horizon:           matrix.Unbounded,
		MaxCost:           matrix.MaxCost,
		Method:            matrix.Relaxation,
		PenaltyMultiplier: vrp.DefaultPenaltyMultiplier,
		Solver:            vrp.Heuristic{},
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:              rand.New(rand.NewSource(1)),
	}
}

// WithHorizon bounds shortest paths and plans to h hops; matrix.Unbounded
// lifts the bound.
func WithHorizon(h int) Option {
	return func(o *Options) {
		if h < matrix.Unbounded {
			o.err = fmt.Errorf("%w: horizon %d", ErrOptionViolation, h)
			return
		}
		o.Horizon = h
	}
}

// WithMaxCost sets the unreachable cost sentinel.
func WithMaxCost(c float64) Option {
	return func(o *Options) {
		if !(c > 0) {
			o.err = fmt.Errorf("%w: max cost %v", ErrOptionViolation, c)
			return
		}
		o.MaxCost = c
	}
}

// WithMethod selects the time-matrix procedure.
func WithMethod(m matrix.Method) Option {
	return func(o *Options) {
		if m != matrix.Relaxation && m != matrix.BreadthFirst {
			o.err = fmt.Errorf("%w: method %v", ErrOptionViolation, m)
			return
		}
		o.Method = m
	}
}

// WithPenaltyMultiplier sets the drop penalty of an unvisited target.
func WithPenaltyMultiplier(m float64) Option {
	return func(o *Options) {
		if !(m > 0) {
			o.err = fmt.Errorf("%w: penalty multiplier %v", ErrOptionViolation, m)
			return
		}
		o.PenaltyMultiplier = m
	}
}

// WithSolver sets the plan solver. Panics on nil.
func WithSolver(s vrp.Solver) Option {
	if s == nil {
		panic("routing: WithSolver(nil)")
	}
	return func(o *Options) { o.Solver = s }
}

// WithSolverTimeout bounds every Solve call.
func WithSolverTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: solver timeout %v", ErrOptionViolation, d)
			return
		}
		o.SolverTimeout = d
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("routing: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithRand sets the generator behind random actions. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("routing: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}
