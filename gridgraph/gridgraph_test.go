package gridgraph_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/geom"
	"github.com/henghenghahei849/gym-flock/gridgraph"
)

func square(half float64) geom.Rect {
	return geom.Rect{Min: geom.Point{X: -half, Y: -half}, Max: geom.Point{X: half, Y: half}}
}

func defaultSpec() gridgraph.Spec {
	return gridgraph.Spec{
		Bounds:          square(120),
		Resolution:      5.5,
		Lattice:         gridgraph.Square,
		Cities:          12,
		IntercityRadius: 30,
		RoadTolerance:   5.5 * 1.2 / 1.4,
		MotionRadius:    5.5 * 1.2,
	}
}

func TestLattice_Square(t *testing.T) {
	basis, err := gridgraph.Square.Basis(5)
	require.NoError(t, err)
	pts := gridgraph.Lattice(square(10), basis)
	require.Len(t, pts, 25)
	assert.Equal(t, geom.Point{X: -10, Y: -10}, pts[0])
	assert.Equal(t, geom.Point{X: 10, Y: 10}, pts[24])

	assert.Nil(t, gridgraph.Lattice(geom.Rect{}, basis))
}

func TestLattice_TriangularSpacing(t *testing.T) {
	basis, err := gridgraph.Triangular.Basis(2)
	require.NoError(t, err)
	pts := gridgraph.Lattice(square(10), basis)
	require.NotEmpty(t, pts)

	ix := geom.NewIndex(pts)
	for i, p := range pts {
		ids, err := ix.Within(p, 1.9)
		require.NoError(t, err)
		assert.Equal(t, []int{i}, ids, "points closer than the lattice spacing at %v", p)
	}

	_, err = gridgraph.LatticeKind("hex").Basis(1)
	require.ErrorIs(t, err, gridgraph.ErrBadSpec)
}

func TestRejectObstacles(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: -3, Y: 1}}
	obs := []geom.Rect{geom.NewRect(geom.Point{X: 4, Y: 4}, geom.Point{X: 6, Y: 6})}
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: -3, Y: 1}}, gridgraph.RejectObstacles(pts, obs))
}

func TestConnectCities(t *testing.T) {
	cities := []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 10, Y: 0}}

	mst := gridgraph.ConnectCities(cities, 0)
	assert.Equal(t, []geom.Segment{
		{A: cities[0], B: cities[2]},
		{A: cities[2], B: cities[1]},
	}, mst)

	all := gridgraph.ConnectCities(cities, 100)
	require.Len(t, all, 3)
	assert.Equal(t, geom.Segment{A: cities[0], B: cities[1]}, all[2])

	assert.Nil(t, gridgraph.ConnectCities(cities[:1], 100))
}

func TestFromPoints_LargestComponent(t *testing.T) {
	pts := []geom.Point{
		{X: 100, Y: 100},           // isolated
		{X: 0, Y: 0}, {X: 1, Y: 0}, // pair
		{X: 50, Y: 0}, {X: 51, Y: 0}, {X: 52, Y: 0}, // triple
	}
	m, err := gridgraph.FromPoints(pts, 1.2)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 50, Y: 0}, {X: 51, Y: 0}, {X: 52, Y: 0}}, m.Targets)
	assert.Equal(t, 3, m.NumTargets())
	require.Len(t, m.Motion.ConnectedComponents(), 1)
	for v := 0; v < m.NumTargets(); v++ {
		assert.True(t, m.Motion.HasEdge(v, v), "target %d lacks its self-loop", v)
	}
	assert.False(t, m.Motion.HasEdge(0, 2))
}

func TestFromPoints_TieKeepsFirst(t *testing.T) {
	pts := []geom.Point{{X: 10, Y: 0}, {X: 0, Y: 0}, {X: 11, Y: 0}, {X: 1, Y: 0}}
	m, err := gridgraph.FromPoints(pts, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{{X: 10, Y: 0}, {X: 11, Y: 0}}, m.Targets)
}

func TestFromPoints_Degenerate(t *testing.T) {
	_, err := gridgraph.FromPoints(nil, 1)
	require.ErrorIs(t, err, gridgraph.ErrDegenerateMap)

	_, err = gridgraph.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 9, Y: 9}}, 1)
	require.ErrorIs(t, err, gridgraph.ErrDegenerateMap)

	_, err = gridgraph.FromPoints([]geom.Point{{X: 0, Y: 0}}, 0)
	require.ErrorIs(t, err, gridgraph.ErrBadSpec)
}

func TestBuild_ConnectedAcrossSeeds(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		m, err := gridgraph.Build(defaultSpec(), rand.New(rand.NewSource(seed)))
		require.NoError(t, err, "seed %d", seed)
		require.Greater(t, m.NumTargets(), 1)
		assert.Len(t, m.Motion.ConnectedComponents(), 1, "seed %d", seed)
		// 4-neighbour square lattice plus the self-loop
		assert.LessOrEqual(t, m.Motion.MaxDegree(), 5)
		assert.NotEmpty(t, m.Roads)
	}
}

func TestBuild_Degenerate(t *testing.T) {
	spec := defaultSpec()
	spec.Bounds = square(1)
	spec.Cities = 0
	_, err := gridgraph.Build(spec, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, gridgraph.ErrDegenerateMap)

	spec = defaultSpec()
	spec.Cities = 1
	_, err = gridgraph.Build(spec, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, gridgraph.ErrBadSpec)

	spec = defaultSpec()
	spec.Obstacles = []geom.Rect{square(200)}
	_, err = gridgraph.Build(spec, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, gridgraph.ErrDegenerateMap)
}

func TestBuild_OpenField(t *testing.T) {
	spec := defaultSpec()
	spec.Bounds = square(11)
	spec.Cities = 0
	m, err := gridgraph.Build(spec, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 25, m.NumTargets())
	// 40 lattice edges mirrored plus 25 loops
	assert.Equal(t, 105, m.Motion.NumHalfEdges())
}

func TestFingerprint(t *testing.T) {
	a, err := gridgraph.Build(defaultSpec(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	b, err := gridgraph.Build(defaultSpec(), rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	c, err := gridgraph.Build(defaultSpec(), rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.False(t, a.Fingerprint().IsZero())
	assert.Len(t, a.Fingerprint().String(), 16)
}

func TestMap_IndexNearest(t *testing.T) {
	m, err := gridgraph.FromPoints([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, 1.1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Index().Nearest(geom.Point{X: 1.8, Y: 3}))
}
