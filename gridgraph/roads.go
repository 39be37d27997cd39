// SPDX-License-Identifier: MIT

package gridgraph

import (
	"math"
	"math/rand"

	"github.com/henghenghahei849/gym-flock/geom"
)

// GenerateRoads samples n city points uniformly in bounds and joins them
// with road segments: the Euclidean minimum spanning tree over the cities,
// followed by every remaining city pair closer than intercityRadius.
func GenerateRoads(rng *rand.Rand, n int, bounds geom.Rect, intercityRadius float64) []geom.Segment {
	cities := make([]geom.Point, n)
	for i := range cities {
		cities[i] = geom.Point{
			X: bounds.Min.X + rng.Float64()*bounds.Width(),
			Y: bounds.Min.Y + rng.Float64()*bounds.Height(),
		}
	}
	return ConnectCities(cities, intercityRadius)
}

// ConnectCities returns the road segments for a fixed set of cities.
//
// Stage 1 (MST): dense Prim from city 0. Each round attaches the closest
// outside city, lowest index on ties; the segment is emitted parent→child.
// Stage 2 (Extras): pairs i<j within intercityRadius not already joined.
//
// Complexity: O(n²) time, O(n²) memory for the distance table.
func ConnectCities(cities []geom.Point, intercityRadius float64) []geom.Segment {
	n := len(cities)
	if n < 2 {
		return nil
	}
	dist := geom.Pairwise(cities, cities)
	joined := make([]bool, n*n)
	segs := make([]geom.Segment, 0, n-1)

	inTree := make([]bool, n)
	best := make([]float64, n)
	parent := make([]int, n)
	for i := range best {
		best[i] = math.Inf(1)
		parent[i] = -1
	}
	best[0] = 0
	for round := 0; round < n; round++ {
		u := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (u < 0 || best[v] < best[u]) {
				u = v
			}
		}
		inTree[u] = true
		if p := parent[u]; p >= 0 {
			segs = append(segs, geom.Segment{A: cities[p], B: cities[u]})
			joined[p*n+u], joined[u*n+p] = true, true
		}
		for v, d := range dist.Row(u) {
			if !inTree[v] && d < best[v] {
				best[v], parent[v] = d, u
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !joined[i*n+j] && dist.Data[i*n+j] <= intercityRadius {
				segs = append(segs, geom.Segment{A: cities[i], B: cities[j]})
			}
		}
	}
	return segs
}
