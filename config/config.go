// SPDX-License-Identifier: MIT

package config

import (
	"time"

	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/matrix"
	"github.com/henghenghahei849/gym-flock/obs"
	"github.com/henghenghahei849/gym-flock/routing"
)

// Config is the complete environment configuration.
type Config struct {
	Robots        int `yaml:"robots"`
	EpisodeLength int `yaml:"episode_length"`
	// Horizon bounds shortest paths and plans in hops; -1 is unbounded.
	Horizon int     `yaml:"horizon"`
	MaxCost float64 `yaml:"max_cost"`
	// Resolution is the lattice spacing; radii scale with it.
	Resolution float64 `yaml:"resolution"`

	Map MapConfig `yaml:"map"`

	// TargetFraction of the targets start each episode unvisited.
	TargetFraction float64 `yaml:"target_fraction"`
	// ActionCount is K, the fixed number of actions per robot.
	ActionCount  int `yaml:"action_count"`
	MaxNodes     int `yaml:"max_nodes"`
	EdgesPerNode int `yaml:"edges_per_node"`
	// NearbyDensity sizes the start region to Robots×NearbyDensity targets.
	NearbyDensity      int     `yaml:"nearby_density"`
	CommRadius         float64 `yaml:"comm_radius"`
	RevisitProbability float64 `yaml:"revisit_probability"`

	Routing RoutingConfig `yaml:"routing"`
	Trace   TraceConfig   `yaml:"trace"`

	Features Features `yaml:"features"`
}

// MapConfig describes the generated geometry.
type MapConfig struct {
	// Extent is the half side of the square map centered on the origin.
	Extent  float64               `yaml:"extent"`
	Lattice gridgraph.LatticeKind `yaml:"lattice"`
	// Cities is the number of road endpoints; 0 keeps the whole lattice.
	Cities          int         `yaml:"cities"`
	IntercityRadius float64     `yaml:"intercity_radius"`
	Obstacles       []geom.Rect `yaml:"obstacles"`
}

// RoutingConfig configures the expert controller.
type RoutingConfig struct {
	Policy            routing.Policy `yaml:"policy"`
	PenaltyMultiplier float64        `yaml:"penalty_multiplier"`
	TimeMethod        matrix.Method  `yaml:"time_method"`
	SolverTimeout     time.Duration  `yaml:"solver_timeout"`
	SolverRestarts    int            `yaml:"solver_restarts"`
}

// TraceConfig configures episode recording.
type TraceConfig struct {
	Compression obs.Compression `yaml:"compression"`
}

// Features toggles optional behavior.
type Features struct {
	CollisionChecks bool `yaml:"collision_checks"`
	CommEdges       bool `yaml:"comm_edges"`
	HideNodes       bool `yaml:"hide_nodes"`
	RevisitNodes    bool `yaml:"revisit_nodes"`
	NodeHistory     bool `yaml:"node_history"`
	PosDelta        bool `yaml:"pos_delta"`
	LastEdgeFeature bool `yaml:"last_edge_feature"`
	// PadNodes sizes node buffers to MaxNodes instead of the map.
	PadNodes     bool `yaml:"pad_nodes"`
	NearbyStarts bool `yaml:"nearby_starts"`
	// RegenerateEachReset draws a new map on every Reset.
	RegenerateEachReset bool `yaml:"regenerate_each_reset"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Robots:        6,
		EpisodeLength: 75,
		Horizon:       10,
		MaxCost:       matrix.MaxCost,
		Resolution:    5.5,
		Map: MapConfig{
			Extent:          120,
			Lattice:         gridgraph.Square,
			Cities:          12,
			IntercityRadius: 20,
		},
		TargetFraction:     0.5,
		ActionCount:        5,
		MaxNodes:           1000,
		EdgesPerNode:       4,
		NearbyDensity:      5,
		CommRadius:         100,
		RevisitProbability: 0.005,
		Routing: RoutingConfig{
			Policy:            routing.Planned,
			PenaltyMultiplier: 500,
			TimeMethod:        matrix.Relaxation,
			SolverTimeout:     2 * time.Second,
		},
		Trace: TraceConfig{Compression: obs.CompressZstd},
		Features: Features{
			CollisionChecks: true,
			PadNodes:        true,
			NearbyStarts:    true,
		},
	}
}

// MotionRadius is the largest hop between targets.
func (c *Config) MotionRadius() float64 { return 1.2 * c.Resolution }

// RoadTolerance is the largest lattice-to-road distance kept.
func (c *Config) RoadTolerance() float64 { return c.MotionRadius() / 1.4 }

// DiscoveryRadius is the sensing range under HideNodes.
func (c *Config) DiscoveryRadius() float64 { return 4 * c.Resolution }

// LatticeActions is the action count a full lattice needs: every neighbour
// within MotionRadius plus the self-loop.
func (c *Config) LatticeActions() int {
	if c.Map.Lattice == gridgraph.Triangular {
		return 7
	}
	return 5
}

// MaxEdges is the edge buffer capacity for padded nodes.
func (c *Config) MaxEdges() int { return c.MaxNodes * c.EdgesPerNode }

// NodeFeatures is the node feature width.
func (c *Config) NodeFeatures() int {
	n := 3
	if c.Features.NodeHistory {
		n++
	}
	if c.Features.HideNodes {
		n++
	}
	return n
}

// EdgeFeatures is the edge feature width.
func (c *Config) EdgeFeatures() int {
	n := 1
	if c.Features.PosDelta {
		n = 3
	}
	if c.Features.LastEdgeFeature {
		n++
	}
	return n
}

// Bounds is the map rectangle.
func (c *Config) Bounds() geom.Rect {
	e := c.Map.Extent
	return geom.Rect{Min: geom.Point{X: -e, Y: -e}, Max: geom.Point{X: e, Y: e}}
}

// MapSpec converts the map settings to a gridgraph.Spec.
func (c *Config) MapSpec() gridgraph.Spec {
	return gridgraph.Spec{
		Bounds:          c.Bounds(),
		Resolution:      c.Resolution,
		Lattice:         c.Map.Lattice,
		Cities:          c.Map.Cities,
		IntercityRadius: c.Map.IntercityRadius,
		RoadTolerance:   c.RoadTolerance(),
		MotionRadius:    c.MotionRadius(),
		Obstacles:       c.Map.Obstacles,
	}
}

// EncoderOptions converts the observation settings to obs.Options.
func (c *Config) EncoderOptions() obs.Options {
	o := obs.Options{
		EdgesPerNode:    c.EdgesPerNode,
		Resolution:      c.Resolution,
		NodeHistory:     c.Features.NodeHistory,
		HideNodes:       c.Features.HideNodes,
		DiscoveryRadius: c.DiscoveryRadius(),
		PosDelta:        c.Features.PosDelta,
		LastEdge:        c.Features.LastEdgeFeature,
		CommEdges:       c.Features.CommEdges,
		CommRadius:      c.CommRadius,
	}
	if c.Features.PadNodes {
		o.MaxNodes = c.MaxNodes
	}
	return o
}
