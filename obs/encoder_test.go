package obs_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/action"
	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
	"github.com/henghenghahei849/gym-flock/obs"
)

// lineMap returns n targets spaced one unit apart on the x axis.
func lineMap(t *testing.T, n int) *gridgraph.Map {
	t.Helper()
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Point{X: float64(i)}
	}
	m, err := gridgraph.FromPoints(pts, 1.2)
	require.NoError(t, err)
	return m
}

func baseOptions() obs.Options {
	return obs.Options{EdgesPerNode: 4, Resolution: 1}
}

func stateAt(t *testing.T, m *gridgraph.Map, at []int, k int) obs.State {
	t.Helper()
	tab, err := action.Candidates(m.Motion, at, k)
	require.NoError(t, err)
	robots := make([]geom.Point, len(at))
	for r, v := range at {
		robots[r] = m.Targets[v]
	}
	visited := make([]bool, m.NumTargets())
	for _, v := range at {
		visited[v] = true
	}
	return obs.State{Robots: robots, Visited: visited, Actions: tab, Step: 3}
}

func TestEncode_BufferLayout(t *testing.T) {
	m := lineMap(t, 4)
	enc, err := obs.NewEncoder(baseOptions(), m, 1)
	require.NoError(t, err)
	require.Equal(t, 10, enc.MotionEdges())
	l := enc.Layout()
	require.Equal(t, 5, l.MaxNodes)
	require.Equal(t, 20, l.MaxEdges())
	require.Equal(t, 3, l.NodeWidth)
	require.Equal(t, 1, l.EdgeWidth)

	o, err := enc.Encode(stateAt(t, m, []int{0}, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, o.Step)
	assert.Equal(t, 5, o.NumNodes)

	// motion prefix in node ids: targets start at 1
	assert.Equal(t, []int32{1, 1, 2, 2, 2, 3, 3, 3, 4, 4}, o.Senders[:10])
	assert.Equal(t, []int32{1, 2, 1, 2, 3, 2, 3, 4, 3, 4}, o.Receivers[:10])
	// gap
	assert.Equal(t, []int32{-1, -1, -1, -1}, o.Senders[10:14])
	assert.Equal(t, []int32{-1, -1, -1, -1}, o.Receivers[10:14])
	// target→robot block, then robot→target block
	assert.Equal(t, []int32{1, 2, 1, 0, 0, 0}, o.Senders[14:])
	assert.Equal(t, []int32{0, 0, 0, 1, 2, 1}, o.Receivers[14:])
	assert.Equal(t, 16, o.ActiveEdges())

	assert.Equal(t, []float32{1, 0, 0}, o.Node(0))
	assert.Equal(t, []float32{0, 1, 0}, o.Node(1))
	assert.Equal(t, []float32{0, 1, 1}, o.Node(2))
	assert.Equal(t, []float32{0}, o.Edge(0))
	assert.Equal(t, []float32{1}, o.Edge(1))
	assert.Equal(t, []float32{1}, o.Edge(15))
}

func TestEncode_PaddedNodes(t *testing.T) {
	m := lineMap(t, 4)
	opts := baseOptions()
	opts.MaxNodes = 8
	enc, err := obs.NewEncoder(opts, m, 1)
	require.NoError(t, err)
	o, err := enc.Encode(stateAt(t, m, []int{0}, 3))
	require.NoError(t, err)
	require.Len(t, o.Nodes, 8*3)
	require.Len(t, o.Senders, 32)
	for i := 5; i < 8; i++ {
		assert.Equal(t, []float32{0, 0, 0}, o.Node(i))
	}
}

func TestEncode_Capacity(t *testing.T) {
	m := lineMap(t, 4)

	opts := baseOptions()
	opts.MaxNodes = 3
	_, err := obs.NewEncoder(opts, m, 1)
	require.ErrorIs(t, err, obs.ErrCapacity)

	opts = baseOptions()
	opts.EdgesPerNode = 1
	_, err = obs.NewEncoder(opts, m, 1)
	require.ErrorIs(t, err, obs.ErrCapacity)

	opts.EdgesPerNode = 3
	enc, err := obs.NewEncoder(opts, m, 1)
	require.NoError(t, err)
	_, err = enc.Encode(stateAt(t, m, []int{0}, 3))
	require.ErrorIs(t, err, obs.ErrCapacity)
}

func TestEncode_StateShape(t *testing.T) {
	m := lineMap(t, 4)
	enc, err := obs.NewEncoder(baseOptions(), m, 1)
	require.NoError(t, err)

	s := stateAt(t, m, []int{0}, 3)
	s.Visited = s.Visited[:2]
	_, err = enc.Encode(s)
	require.ErrorIs(t, err, obs.ErrStateShape)

	s = stateAt(t, m, []int{0}, 3)
	s.Actions = nil
	_, err = enc.Encode(s)
	require.ErrorIs(t, err, obs.ErrStateShape)

	_, err = obs.NewEncoder(baseOptions(), m, 0)
	require.ErrorIs(t, err, obs.ErrStateShape)
}

func TestEncode_LastEdgeAndPosDelta(t *testing.T) {
	m := lineMap(t, 4)
	opts := baseOptions()
	opts.LastEdge = true
	opts.PosDelta = true
	opts.Resolution = 0.5
	enc, err := obs.NewEncoder(opts, m, 1)
	require.NoError(t, err)
	require.Equal(t, 4, enc.Layout().EdgeWidth)

	s := stateAt(t, m, []int{1}, 3)
	s.LastLoc = []int{0}
	o, err := enc.Encode(s)
	require.NoError(t, err)

	// motion edge 1→2 in target ids is slot 1 (after 0's loop), never flagged
	assert.Equal(t, []float32{0, -2, 0, 2}, o.Edge(1))
	suffix := 20 - 6
	assert.Equal(t, []float32{1, -2, 0, 2}, o.Edge(suffix))
	assert.Equal(t, []float32{0, 0, 0, 0}, o.Edge(suffix+1))
	assert.Equal(t, []float32{0, 2, 0, 2}, o.Edge(suffix+2))
	// robot→target block is never flagged
	assert.Equal(t, []float32{0, 2, 0, 2}, o.Edge(suffix+3))
}

func TestEncode_CommEdges(t *testing.T) {
	m := lineMap(t, 4)
	opts := baseOptions()
	opts.CommEdges = true
	opts.CommRadius = 5
	enc, err := obs.NewEncoder(opts, m, 2)
	require.NoError(t, err)
	require.Equal(t, 24, enc.Layout().MaxEdges())

	o, err := enc.Encode(stateAt(t, m, []int{0, 3}, 3))
	require.NoError(t, err)
	assert.Equal(t, 24, o.ActiveEdges())
	assert.Equal(t, []int32{0, 1}, o.Senders[22:])
	assert.Equal(t, []int32{1, 0}, o.Receivers[22:])
	assert.Equal(t, []float32{3}, o.Edge(23))

	opts.CommRadius = 2
	enc, err = obs.NewEncoder(opts, m, 2)
	require.NoError(t, err)
	o, err = enc.Encode(stateAt(t, m, []int{0, 3}, 3))
	require.NoError(t, err)
	assert.Equal(t, 22, o.ActiveEdges())
}

func TestEncode_History(t *testing.T) {
	m := lineMap(t, 4)
	opts := baseOptions()
	opts.NodeHistory = true
	enc, err := obs.NewEncoder(opts, m, 1)
	require.NoError(t, err)

	s := stateAt(t, m, []int{0}, 3)
	_, err = enc.Encode(s)
	require.ErrorIs(t, err, obs.ErrStateShape)

	s.History = []bool{true, false, true, false}
	o, err := enc.Encode(s)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0, 1}, o.Node(1))
	assert.Equal(t, []float32{0, 1, 1, 1}, o.Node(3))
	assert.Equal(t, []float32{1, 0, 0, 0}, o.Node(0))
}

func TestEncode_PartialObservability(t *testing.T) {
	m := lineMap(t, 10)
	opts := baseOptions()
	opts.EdgesPerNode = 6
	opts.HideNodes = true
	opts.DiscoveryRadius = 2
	enc, err := obs.NewEncoder(opts, m, 1)
	require.NoError(t, err)
	require.Equal(t, 3, enc.Layout().FrontierCol)

	o, err := enc.Encode(stateAt(t, m, []int{0}, 3))
	require.NoError(t, err)
	disc := enc.Discovered()
	assert.Equal(t, []bool{true, true, true, false, false, false, false, false, false, false}, disc)

	// target 2 (node 3) borders undiscovered target 3 (node 4)
	assert.Equal(t, []float32{0, 1, 1, 1}, o.Node(3))
	assert.Equal(t, []float32{0, 1, 1, 0}, o.Node(2))
	assert.Equal(t, []float32{0, 0, 0, 0}, o.Node(4))
	for e := 0; e < enc.MotionEdges(); e++ {
		s, r := o.Senders[e], o.Receivers[e]
		if s == obs.Sentinel {
			continue
		}
		assert.Less(t, s, int32(4))
		assert.Less(t, r, int32(4))
	}
	// 3 loops + 4 half-edges among discovered targets, plus 6 action edges
	assert.Equal(t, 13, o.ActiveEdges())

	// discovery is monotonic
	o, err = enc.Encode(stateAt(t, m, []int{5}, 3))
	require.NoError(t, err)
	disc = enc.Discovered()
	for tgt := 0; tgt <= 7; tgt++ {
		assert.True(t, disc[tgt], "target %d", tgt)
	}
	assert.False(t, disc[8])
	assert.Equal(t, float32(1), o.Node(1 + 7)[3])

	enc.ResetDiscovery()
	assert.Equal(t, make([]bool, 10), enc.Discovered())
}

func TestEncode_DiscoveredWithoutHiding(t *testing.T) {
	m := lineMap(t, 3)
	enc, err := obs.NewEncoder(baseOptions(), m, 1)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, enc.Discovered())
}

type pair struct{ s, r int }

func TestDecode_RoundTrip(t *testing.T) {
	m := lineMap(t, 6)
	opts := baseOptions()
	opts.MaxNodes = 10
	enc, err := obs.NewEncoder(opts, m, 2)
	require.NoError(t, err)
	s := stateAt(t, m, []int{1, 4}, 3)
	o, err := enc.Encode(s)
	require.NoError(t, err)

	var want []pair
	for _, e := range m.Motion.Edges() {
		want = append(want, pair{2 + e.From, 2 + e.To})
	}
	for r := 0; r < 2; r++ {
		for _, d := range s.Actions.Row(r) {
			want = append(want, pair{2 + d, r}, pair{r, 2 + d})
		}
	}

	g := obs.Decode(o)
	require.Len(t, g.Nodes, 8)
	assert.Equal(t, 3, g.Step)
	var got []pair
	for _, e := range g.Edges {
		got = append(got, pair{e.Sender, e.Receiver})
	}
	sortPairs(want)
	sortPairs(got)
	assert.Equal(t, want, got)
	for i := 0; i < o.NumNodes; i++ {
		assert.Equal(t, o.Node(i), g.Nodes[i])
	}
}

func sortPairs(p []pair) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].s != p[j].s {
			return p[i].s < p[j].s
		}
		return p[i].r < p[j].r
	})
}
