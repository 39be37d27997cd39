package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/geom"
)

func TestPairwise_Shape(t *testing.T) {
	rows := []geom.Point{{0, 0}, {3, 4}}
	cols := []geom.Point{{0, 0}, {6, 8}, {3, 0}}
	tab := geom.Pairwise(rows, cols)

	require.Equal(t, 2, tab.Rows)
	require.Equal(t, 3, tab.Cols)
	require.Len(t, tab.Data, 6)

	d, err := tab.At(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-12)
	assert.Equal(t, []float64{0, 10, 3}, tab.Row(0))

	_, err = tab.At(2, 0)
	require.ErrorIs(t, err, geom.ErrShape)
}

func TestSegmentDistance(t *testing.T) {
	s := geom.Segment{A: geom.Point{0, 0}, B: geom.Point{10, 0}}
	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"above middle", geom.Point{5, 2}, 2},
		{"past end", geom.Point{13, 4}, 5},
		{"on segment", geom.Point{7, 0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geom.SegmentDistance(tc.p, s), 1e-9)
		})
	}
}

func TestIndex_WithinSortedInclusive(t *testing.T) {
	pts := []geom.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {5, 5}}
	ix := geom.NewIndex(pts)
	require.Equal(t, 5, ix.Len())

	ids, err := ix.Within(geom.Point{0, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, ids)

	_, err = ix.Within(geom.Point{0, 0}, -1)
	require.ErrorIs(t, err, geom.ErrNegativeRadius)
}

func TestIndex_NearestTieBreaksLowestID(t *testing.T) {
	pts := []geom.Point{{2, 0}, {-2, 0}, {0, 2}, {10, 10}}
	ix := geom.NewIndex(pts)

	assert.Equal(t, 0, ix.Nearest(geom.Point{0, 0}))
	assert.Equal(t, 3, ix.Nearest(geom.Point{9, 9}))
	assert.Equal(t, []int{1, 2}, ix.NearestAll([]geom.Point{{-3, 0}, {0, 3}}))

	assert.Equal(t, -1, geom.NewIndex(nil).Nearest(geom.Point{}))
}

func TestIndex_NearestMatchesBruteForce(t *testing.T) {
	var pts []geom.Point
	for i := 0; i < 200; i++ {
		a := float64(i) * 0.37
		pts = append(pts, geom.Point{X: 40 * math.Cos(a) * float64(i%7), Y: 40 * math.Sin(a*1.3)})
	}
	ix := geom.NewIndex(pts)
	queries := []geom.Point{{0, 0}, {13, -7}, {-100, 20}, {55, 55}}
	for _, q := range queries {
		row := geom.Pairwise([]geom.Point{q}, pts).Row(0)
		best := 0
		for j, d := range row {
			if d < row[best] {
				best = j
			}
		}
		assert.Equal(t, best, ix.Nearest(q), "query %v", q)
	}
}

func TestIndex_RadiusPairs(t *testing.T) {
	ix := geom.NewIndex([]geom.Point{{0, 0}, {1, 0}, {3, 0}})

	withLoops, err := ix.RadiusPairs(1.5, true)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}}, withLoops)

	noLoops, err := ix.RadiusPairs(1.5, false)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}}, noLoops)
}

func TestRoadIndex_Filter(t *testing.T) {
	roads := []geom.Segment{
		{A: geom.Point{0, 0}, B: geom.Point{10, 0}},
		{A: geom.Point{10, 0}, B: geom.Point{10, 10}},
	}
	ri, err := geom.NewRoadIndex(roads, 1)
	require.NoError(t, err)
	require.Equal(t, 2, ri.Len())

	pts := []geom.Point{{5, 0.5}, {5, 5}, {10.9, 7}, {20, 0}, {0, -1}}
	assert.Equal(t, []geom.Point{{5, 0.5}, {10.9, 7}, {0, -1}}, ri.Filter(pts))

	_, err = geom.NewRoadIndex(roads, -1)
	require.ErrorIs(t, err, geom.ErrNegativeRadius)
}

func TestRect(t *testing.T) {
	r := geom.NewRect(geom.Point{4, -2}, geom.Point{-4, 2})
	assert.Equal(t, geom.Point{-4, -2}, r.Min)
	assert.True(t, r.Contains(geom.Point{4, 2}))
	assert.False(t, r.Contains(geom.Point{4.1, 0}))
	assert.Equal(t, geom.Point{0, 0}, r.Center())
	assert.False(t, r.Empty())
	assert.True(t, geom.Rect{}.Empty())
}
