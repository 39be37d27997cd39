// SPDX-License-Identifier: MIT

package coverage

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/henghenghahei849/gym-flock/action"
	"github.com/henghenghahei849/gym-flock/bfs"
	"github.com/henghenghahei849/gym-flock/config"
	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/obs"
	"github.com/henghenghahei849/gym-flock/routing"
	"github.com/henghenghahei849/gym-flock/vrp"
)

// Env is one coverage environment. Create it with New.
type Env struct {
	cfg  config.Config
	opts options
	log  *slog.Logger
	rng  *rand.Rand
	seed int64
	ctrl *routing.Controller

	m           *gridgraph.Map
	enc         *obs.Encoder
	startRegion []int
	episodes    int

	episode       uuid.UUID
	robots        []geom.Point
	current       []int
	lastLoc       []int
	visited       []bool
	history       []bool
	actions       *action.Table
	step          int
	reward        int
	episodeReward int
	done          bool
	last          *obs.Observation
}

// New validates cfg, builds the first map and returns an environment that
// needs Reset before Step.
func New(cfg *config.Config, opts ...Option) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Env{
		cfg:  *cfg,
		opts: o,
		log:  o.logger,
		rng:  rand.New(rand.NewSource(o.seed)),
		seed: o.seed,
	}
	var solver vrp.Solver = e.heuristic()
	if o.solver != nil {
		solver = o.solver
	}
	ctrl, err := routing.New(
		routing.WithHorizon(cfg.Horizon),
		routing.WithMaxCost(cfg.MaxCost),
		routing.WithMethod(cfg.Routing.TimeMethod),
		routing.WithPenaltyMultiplier(cfg.Routing.PenaltyMultiplier),
		routing.WithSolver(solver),
		routing.WithSolverTimeout(cfg.Routing.SolverTimeout),
		routing.WithLogger(o.logger),
		routing.WithRand(e.rng),
	)
	if err != nil {
		return nil, err
	}
	e.ctrl = ctrl
	if err := e.regenerate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Seed restarts the random stream from seed. The built-in plan heuristic
// is reseeded too; a solver given with WithSolver is left alone. Other state
// is kept.
func (e *Env) Seed(seed int64) []int64 {
	e.rng.Seed(seed)
	e.seed = seed
	if e.opts.solver == nil {
		e.ctrl.SetSolver(e.heuristic())
	}
	return []int64{seed}
}

func (e *Env) heuristic() vrp.Heuristic {
	return vrp.Heuristic{Restarts: e.cfg.Routing.SolverRestarts, Seed: e.seed}
}

// regenerate installs a new (or the fixed) map.
func (e *Env) regenerate() error {
	m := e.opts.fixed
	if m == nil {
		var err error
		if m, err = gridgraph.Build(e.cfg.MapSpec(), e.rng); err != nil {
			return fmt.Errorf("building map: %w", err)
		}
	}
	if d := m.Motion.MaxDegree(); d > e.cfg.ActionCount {
		return fmt.Errorf("%w: map degree %d, action_count %d", action.ErrActionOverflow, d, e.cfg.ActionCount)
	}
	if m.NumTargets() < e.cfg.Robots {
		return fmt.Errorf("%w: %d targets, %d robots", ErrTooFewTargets, m.NumTargets(), e.cfg.Robots)
	}
	enc, err := obs.NewEncoder(e.cfg.EncoderOptions(), m, e.cfg.Robots)
	if err != nil {
		return fmt.Errorf("sizing observations: %w", err)
	}
	e.m, e.enc = m, enc
	e.ctrl.Invalidate()
	e.log.Info("map ready",
		"targets", m.NumTargets(),
		"motion_edges", m.Motion.NumHalfEdges(),
		"fingerprint", m.Fingerprint().String())
	return e.pickStartRegion()
}

// pickStartRegion selects the targets robots may start on: the BFS
// neighbourhood of a random target with NearbyStarts, else every target.
// A neighbourhood smaller than the team falls back to every target.
func (e *Env) pickStartRegion() error {
	n := e.m.NumTargets()
	if e.cfg.Features.NearbyStarts {
		region, err := bfs.Nearest(e.m.Motion, e.rng.Intn(n), e.cfg.Robots*e.cfg.NearbyDensity)
		if err != nil {
			return err
		}
		if len(region) >= e.cfg.Robots {
			e.startRegion = region
			return nil
		}
	}
	e.startRegion = make([]int, n)
	for i := range e.startRegion {
		e.startRegion[i] = i
	}
	return nil
}

// Reset starts a new episode and returns its first observation.
func (e *Env) Reset() (*obs.Observation, error) {
	switch {
	case e.episodes > 0 && e.cfg.Features.RegenerateEachReset && e.opts.fixed == nil:
		if err := e.regenerate(); err != nil {
			return nil, err
		}
	case e.episodes > 0 && e.cfg.Features.NearbyStarts:
		if err := e.pickStartRegion(); err != nil {
			return nil, err
		}
	}
	e.episodes++

	id, err := uuid.NewRandomFromReader(e.rng)
	if err != nil {
		return nil, err
	}
	e.episode = id
	e.step, e.reward, e.episodeReward, e.done = 0, 0, 0, false
	e.lastLoc = nil
	e.ctrl.ResetPlan()
	e.enc.ResetDiscovery()

	n, r := e.m.NumTargets(), e.cfg.Robots
	e.robots = make([]geom.Point, r)
	for i, k := range e.rng.Perm(len(e.startRegion))[:r] {
		e.robots[i] = e.m.Targets[e.startRegion[k]]
	}

	e.visited = make([]bool, n)
	for i := range e.visited {
		e.visited[i] = true
	}
	for _, t := range e.rng.Perm(n)[:int(float64(n)*e.cfg.TargetFraction)] {
		e.visited[t] = false
	}
	e.history = make([]bool, n)

	if _, err := e.observe(); err != nil {
		return nil, err
	}
	if err := e.render(); err != nil {
		return nil, err
	}
	return e.last, nil
}

// Step moves every robot by its action and returns the next observation.
func (e *Env) Step(actions []int) (*Result, error) {
	if e.actions == nil {
		return nil, ErrNotReset
	}
	if e.done {
		return nil, fmt.Errorf("%w: step %d", ErrEpisodeDone, e.step)
	}
	dest, err := e.actions.Destinations(actions)
	if err != nil {
		return nil, fmt.Errorf("Step: %w", err)
	}
	next, blocked, err := action.Resolve(e.current, dest, e.cfg.Features.CollisionChecks)
	if err != nil {
		return nil, fmt.Errorf("Step: %w", err)
	}
	e.lastLoc = append([]int(nil), e.current...)
	for i, t := range next {
		e.robots[i] = e.m.Targets[t]
	}
	e.step++

	revisited, err := e.observe()
	if err != nil {
		return nil, err
	}
	all := true
	for _, v := range e.visited {
		all = all && v
	}
	e.done = e.step >= e.cfg.EpisodeLength || all
	e.episodeReward += e.reward
	if err := e.render(); err != nil {
		return nil, err
	}
	if e.done {
		e.log.Info("episode finished",
			"episode", e.episode,
			"steps", e.step,
			"reward", e.episodeReward,
			"all_visited", all)
	}
	return &Result{
		Obs:    e.last,
		Reward: e.reward,
		Done:   e.done,
		Info:   Info{Step: e.step, Blocked: blocked, Revisited: revisited, AllVisited: all},
	}, nil
}

// observe applies the revisit rule, locates robots, marks their targets
// visited, rebuilds the action table and encodes. It sets e.reward and
// returns the number of revisited targets.
func (e *Env) observe() (int, error) {
	revisited := 0
	if e.cfg.Features.RevisitNodes {
		for t, v := range e.visited {
			if e.rng.Float64() < e.cfg.RevisitProbability && v {
				e.visited[t] = false
				revisited++
			}
		}
	}

	e.current = e.m.Index().NearestAll(e.robots)
	tab, err := action.Candidates(e.m.Motion, e.current, e.cfg.ActionCount)
	if err != nil {
		return 0, fmt.Errorf("building action table: %w", err)
	}
	e.actions = tab

	e.reward = 0
	for _, t := range e.current {
		if !e.visited[t] {
			e.visited[t] = true
			e.reward++
		}
		e.history[t] = true
	}

	o, err := e.enc.Encode(obs.State{
		Robots:  e.robots,
		Visited: e.visited,
		History: e.history,
		Actions: e.actions,
		LastLoc: e.lastLoc,
		Step:    e.step,
	})
	if err != nil {
		return 0, err
	}
	e.last = o
	return revisited, nil
}

func (e *Env) render() error {
	if e.opts.renderer == nil {
		return nil
	}
	if err := e.opts.renderer.Render(e.Snapshot()); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the episode state.
func (e *Env) Snapshot() Snapshot {
	s := Snapshot{
		Episode:       e.episode,
		Step:          e.step,
		Map:           e.m,
		Robots:        append([]geom.Point(nil), e.robots...),
		Current:       append([]int(nil), e.current...),
		Visited:       append([]bool(nil), e.visited...),
		Reward:        e.reward,
		EpisodeReward: e.episodeReward,
	}
	if e.cfg.Features.HideNodes {
		s.Discovered = e.enc.Discovered()
	}
	return s
}

// Observation returns the latest observation, or nil before Reset.
func (e *Env) Observation() *obs.Observation { return e.last }

// EpisodeReward returns the reward accumulated since Reset.
func (e *Env) EpisodeReward() int { return e.episodeReward }

// Episode returns the id of the running episode.
func (e *Env) Episode() uuid.UUID { return e.episode }

// Actions returns the action table of the current step, or nil before Reset.
func (e *Env) Actions() *action.Table { return e.actions }

// Map returns the current map.
func (e *Env) Map() *gridgraph.Map { return e.m }

// Layout returns the observation layout of the current map.
func (e *Env) Layout() obs.Layout { return e.enc.Layout() }

// Config returns a copy of the configuration.
func (e *Env) Config() config.Config { return e.cfg }
