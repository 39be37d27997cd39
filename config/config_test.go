package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/config"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/matrix"
	"github.com/henghenghahei849/gym-flock/obs"
	"github.com/henghenghahei849/gym-flock/routing"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())

	assert.InDelta(t, 6.6, c.MotionRadius(), 1e-12)
	assert.InDelta(t, 6.6/1.4, c.RoadTolerance(), 1e-12)
	assert.InDelta(t, 22.0, c.DiscoveryRadius(), 1e-12)
	assert.Equal(t, 4000, c.MaxEdges())
	assert.Equal(t, 3, c.NodeFeatures())
	assert.Equal(t, 1, c.EdgeFeatures())
	assert.Equal(t, routing.Planned, c.Routing.Policy)

	spec := c.MapSpec()
	assert.Equal(t, -120.0, spec.Bounds.Min.X)
	assert.Equal(t, 120.0, spec.Bounds.Max.Y)
	assert.Equal(t, gridgraph.Square, spec.Lattice)
	assert.Equal(t, 12, spec.Cities)

	o := c.EncoderOptions()
	assert.Equal(t, 1000, o.MaxNodes)
	assert.Equal(t, 22.0, o.DiscoveryRadius)
}

func TestFeatureWidths(t *testing.T) {
	c := config.Default()
	c.Features.NodeHistory = true
	c.Features.HideNodes = true
	c.Features.PosDelta = true
	c.Features.LastEdgeFeature = true
	c.Features.PadNodes = false
	assert.Equal(t, 5, c.NodeFeatures())
	assert.Equal(t, 4, c.EdgeFeatures())
	assert.Equal(t, 0, c.EncoderOptions().MaxNodes)
}

func TestParse_YAML(t *testing.T) {
	c, err := config.Parse([]byte(`
robots: 3
horizon: -1
action_count: 7
map:
  lattice: triangular
  cities: 0
  obstacles:
    - {min: {x: 0, y: 0}, max: {x: 10, y: 10}}
routing:
  policy: greedy
  time_method: breadth-first
  solver_timeout: 250ms
trace:
  compression: lz4
features:
  hide_nodes: true
`))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Robots)
	assert.Equal(t, -1, c.Horizon)
	assert.Equal(t, gridgraph.Triangular, c.Map.Lattice)
	assert.Equal(t, 0, c.Map.Cities)
	require.Len(t, c.Map.Obstacles, 1)
	assert.Equal(t, 10.0, c.Map.Obstacles[0].Max.X)
	assert.Equal(t, routing.Greedy, c.Routing.Policy)
	assert.Equal(t, matrix.BreadthFirst, c.Routing.TimeMethod)
	assert.Equal(t, 250*time.Millisecond, c.Routing.SolverTimeout)
	assert.Equal(t, obs.CompressLZ4, c.Trace.Compression)
	assert.True(t, c.Features.HideNodes)
	// untouched keys keep their defaults
	assert.Equal(t, 75, c.EpisodeLength)
	assert.Equal(t, 7, c.LatticeActions())
	assert.True(t, c.Features.CollisionChecks)
}

func TestParse_Empty(t *testing.T) {
	c, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "robotz: 4"},
		{"bad policy", "routing: {policy: oracle}"},
		{"bad compression", "trace: {compression: gzip}"},
		{"not yaml", "robots: [1"},
		{"triangular lattice with five actions", "map: {lattice: triangular}"},
		{"square lattice with four actions", "action_count: 4"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestValidate_JoinsAllProblems(t *testing.T) {
	c := config.Default()
	c.Robots = 0
	c.TargetFraction = 1.5
	c.Map.Cities = 1
	c.Routing.PenaltyMultiplier = 0
	err := c.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	msg := err.Error()
	for _, want := range []string{"robots 0", "target_fraction 1.5", "map.cities 1", "routing.penalty_multiplier 0"} {
		assert.Contains(t, msg, want)
	}
	assert.Equal(t, 4, strings.Count(msg, "config: invalid value"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "env.jsonc")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  // fewer robots for a quick run
  "robots": 2,
  "episode_length": 30,
  "features": {"comm_edges": true,},
}`), 0o644))
	c, err := config.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Robots)
	assert.Equal(t, 30, c.EpisodeLength)
	assert.True(t, c.Features.CommEdges)

	yamlPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("robots: -4\n"), 0o644))
	_, err = config.Load(yamlPath)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), yamlPath)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
