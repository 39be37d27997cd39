// SPDX-License-Identifier: MIT

package coverage

import (
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/obs"
	"github.com/henghenghahei849/gym-flock/vrp"
)

var (
	// ErrTooFewTargets indicates a map with fewer targets than robots.
	ErrTooFewTargets = errors.New("coverage: fewer targets than robots")

	// ErrNotReset indicates Step or Expert before the first Reset.
	ErrNotReset = errors.New("coverage: environment has not been reset")

	// ErrEpisodeDone indicates Step after the episode ended.
	ErrEpisodeDone = errors.New("coverage: episode is done")
)

// Snapshot is a copy of the visible episode state.
type Snapshot struct {
	Episode uuid.UUID
	Step    int
	Map     *gridgraph.Map
	Robots  []geom.Point
	// Current holds the target each robot occupies.
	Current []int
	Visited []bool
	// Discovered is nil unless nodes are hidden.
	Discovered    []bool
	Reward        int
	EpisodeReward int
}

// Renderer receives a snapshot after every Reset and Step.
type Renderer interface {
	Render(s Snapshot) error
}

// Info carries step diagnostics.
type Info struct {
	Step int
	// Blocked counts moves refused by collision checks.
	Blocked int
	// Revisited counts targets reset to unvisited by the revisit rule.
	Revisited  int
	AllVisited bool
}

// Result is the outcome of one Step.
type Result struct {
	Obs    *obs.Observation
	Reward int
	Done   bool
	Info   Info
}

type options struct {
	logger   *slog.Logger
	solver   vrp.Solver
	codec    obs.TensorCodec
	fixed    *gridgraph.Map
	renderer Renderer
	seed     int64
}

// Option configures New.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:   1,
	}
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("coverage: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// WithSolver replaces the built-in plan heuristic. Panics on nil.
func WithSolver(s vrp.Solver) Option {
	if s == nil {
		panic("coverage: WithSolver(nil)")
	}
	return func(o *options) { o.solver = s }
}

// WithCodec sets the codec behind Pack. The default flattens the encoder
// layout with obs.FlatCodec. Panics on nil.
func WithCodec(c obs.TensorCodec) Option {
	if c == nil {
		panic("coverage: WithCodec(nil)")
	}
	return func(o *options) { o.codec = c }
}

// WithMap fixes the geometry; the map settings of the configuration are then
// ignored and Reset never regenerates. Panics on nil.
func WithMap(m *gridgraph.Map) Option {
	if m == nil {
		panic("coverage: WithMap(nil)")
	}
	return func(o *options) { o.fixed = m }
}

// WithRenderer registers a renderer. Panics on nil.
func WithRenderer(r Renderer) Option {
	if r == nil {
		panic("coverage: WithRenderer(nil)")
	}
	return func(o *options) { o.renderer = r }
}

// WithSeed sets the initial seed (default 1).
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}
