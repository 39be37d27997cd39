package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henghenghahei849/gym-flock/bfs"
	"github.com/henghenghahei849/gym-flock/builder"
	"github.com/henghenghahei849/gym-flock/core"
)

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 0)
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := builder.MustBuild(builder.Path(3))
	_, err = bfs.BFS(g, 5)
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(g, 0, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

// TestBFS_GridLayers checks visit order and depth on a 3×3 grid with loops.
func TestBFS_GridLayers(t *testing.T) {
	g := builder.MustBuild(builder.Grid(3, 3), builder.WithLoops())
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 3, 2, 4, 6, 5, 7, 8}, res.Order)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 3, 2, 3, 4}, res.Depth)

	path, err := res.PathTo(8)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 5, 8}, path)
}

func TestBFS_MaxDepthAndFilter(t *testing.T) {
	g := builder.MustBuild(builder.Path(5))

	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(2))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Order)
	assert.False(t, res.Reached(3))
	_, err = res.PathTo(4)
	require.Error(t, err)

	res, err = bfs.BFS(g, 2, bfs.WithFilterNeighbor(func(_, nbr int) bool { return nbr != 1 }))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, res.Order)
	assert.Equal(t, bfs.Unreached, res.Parent[2])
}

func TestBFS_HooksAndCancellation(t *testing.T) {
	g := builder.MustBuild(builder.Cycle(6))
	stop := errors.New("stop")
	_, err := bfs.BFS(g, 0, bfs.WithOnVisit(func(v, _ int) error {
		if v == 3 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNearest_WholeLayers(t *testing.T) {
	g := builder.MustBuild(builder.Grid(3, 3))
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"zero", 0, []int{}},
		{"start only", 1, []int{0}},
		{"first layer completes", 2, []int{0, 1, 3}},
		{"second layer", 4, []int{0, 1, 3, 2, 4, 6}},
		{"exhausts component", 50, []int{0, 1, 3, 2, 4, 6, 5, 7, 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bfs.Nearest(g, 0, tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNearest_StaysInComponent(t *testing.T) {
	g, err := core.NewGraph(4)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(2, 3))

	got, err := bfs.Nearest(g, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, got)
}
