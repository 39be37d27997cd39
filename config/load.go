// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/matrix"
	"github.com/henghenghahei849/gym-flock/routing"
)

// ErrInvalid is wrapped by every validation problem.
var ErrInvalid = errors.New("config: invalid value")

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML (JSON is a subset) on top of Default and validates the
// result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Robots >= 1, "robots %d", c.Robots)
	check(c.EpisodeLength >= 1, "episode_length %d", c.EpisodeLength)
	check(c.Horizon >= matrix.Unbounded, "horizon %d", c.Horizon)
	check(c.MaxCost > 0, "max_cost %v", c.MaxCost)
	check(c.Resolution > 0, "resolution %v", c.Resolution)
	check(c.Map.Extent > c.Resolution, "map.extent %v must exceed resolution %v", c.Map.Extent, c.Resolution)
	check(c.Map.Lattice == gridgraph.Square || c.Map.Lattice == gridgraph.Triangular, "map.lattice %q", c.Map.Lattice)
	check(c.Map.Cities == 0 || c.Map.Cities >= 2, "map.cities %d (want 0 or >= 2)", c.Map.Cities)
	check(c.Map.IntercityRadius >= 0, "map.intercity_radius %v", c.Map.IntercityRadius)
	for i, o := range c.Map.Obstacles {
		check(!o.Empty(), "map.obstacles[%d] is empty", i)
	}
	check(c.TargetFraction > 0 && c.TargetFraction <= 1, "target_fraction %v", c.TargetFraction)
	check(c.ActionCount >= c.LatticeActions(), "action_count %d below the %d a %s lattice needs", c.ActionCount, c.LatticeActions(), c.Map.Lattice)
	check(c.EdgesPerNode >= 1, "edges_per_node %d", c.EdgesPerNode)
	check(!c.Features.PadNodes || c.MaxNodes > c.Robots, "max_nodes %d with pad_nodes", c.MaxNodes)
	check(c.NearbyDensity >= 1, "nearby_density %d", c.NearbyDensity)
	check(!c.Features.CommEdges || c.CommRadius > 0, "comm_radius %v", c.CommRadius)
	check(c.RevisitProbability >= 0 && c.RevisitProbability <= 1, "revisit_probability %v", c.RevisitProbability)
	check(c.Routing.Policy >= routing.Random && c.Routing.Policy <= routing.Planned, "routing.policy %v", c.Routing.Policy)
	check(c.Routing.PenaltyMultiplier > 0, "routing.penalty_multiplier %v", c.Routing.PenaltyMultiplier)
	check(c.Routing.TimeMethod == matrix.Relaxation || c.Routing.TimeMethod == matrix.BreadthFirst, "routing.time_method %v", c.Routing.TimeMethod)
	check(c.Routing.SolverTimeout >= 0, "routing.solver_timeout %v", c.Routing.SolverTimeout)
	check(c.Routing.SolverRestarts >= 0, "routing.solver_restarts %d", c.Routing.SolverRestarts)
	return errors.Join(errs...)
}
