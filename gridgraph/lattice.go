// SPDX-License-Identifier: MIT

package gridgraph

import (
	"math"

	"github.com/henghenghahei849/gym-flock/geom"
)

// Lattice returns every point center + i·basis[0] + j·basis[1] that lies
// inside bounds, for integer i, j. Points are emitted with j in the outer
// loop and i in the inner loop, both ascending.
//
// Complexity: O(W·H / |b0×b1|) points, O(k²) candidates examined where
// k is the span of bounds over the shortest basis vector.
func Lattice(bounds geom.Rect, basis [2]geom.Point) []geom.Point {
	b0, b1 := basis[0], basis[1]
	shortest := math.Min(math.Hypot(b0.X, b0.Y), math.Hypot(b1.X, b1.Y))
	cross := math.Abs(b0.X*b1.Y - b0.Y*b1.X)
	if shortest <= 0 || cross == 0 || bounds.Empty() {
		return nil
	}
	// the shear can push columns sideways; scan wide enough to cover it
	k := int(math.Ceil(math.Hypot(bounds.Width(), bounds.Height())/shortest)) + 1
	center := bounds.Center()

	var pts []geom.Point
	for j := -k; j <= k; j++ {
		for i := -k; i <= k; i++ {
			p := center.Add(b0.Scale(float64(i))).Add(b1.Scale(float64(j)))
			if bounds.Contains(p) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// RejectObstacles returns the points of pts outside every obstacle.
func RejectObstacles(pts []geom.Point, obstacles []geom.Rect) []geom.Point {
	if len(obstacles) == 0 {
		return pts
	}
	out := make([]geom.Point, 0, len(pts))
next:
	for _, p := range pts {
		for _, o := range obstacles {
			if o.Contains(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}
