// SPDX-License-Identifier: MIT

package geom

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// pointTol is the half-width of the box stored for each point. rtreego
// rejects zero-length rectangles and treats touching boxes as disjoint.
const pointTol = 1e-9

// pointEntry wraps one indexed point for R-tree storage.
type pointEntry struct {
	id   int
	p    Point
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *pointEntry) Bounds() rtreego.Rect { return e.bbox }

// Index answers radius and nearest-point queries over a fixed point set.
// Ids are the positions of the points in the slice given to NewIndex.
type Index struct {
	tree   *rtreego.Rtree
	points []Point
}

// NewIndex builds an R-tree over points.
func NewIndex(points []Point) *Index {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	for i, p := range points {
		tree.Insert(&pointEntry{id: i, p: p, bbox: rtreego.Point{p.X, p.Y}.ToRect(pointTol)})
	}
	return &Index{tree: tree, points: points}
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return len(ix.points) }

// Point returns the indexed point with the given id.
func (ix *Index) Point(id int) Point { return ix.points[id] }

// Within returns the ids of all points at distance <= r from p, ascending.
func (ix *Index) Within(p Point, r float64) ([]int, error) {
	if r < 0 {
		return nil, ErrNegativeRadius
	}
	hits := ix.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(r + 2*pointTol))
	ids := make([]int, 0, len(hits))
	for _, h := range hits {
		e := h.(*pointEntry)
		if e.p.Distance(p) <= r {
			ids = append(ids, e.id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// Nearest returns the id of the point closest to p, the lowest id among
// equally close points, or -1 when the index is empty.
func (ix *Index) Nearest(p Point) int {
	hit := ix.tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if hit == nil {
		return -1
	}
	// the tree only gives an approximate candidate; rescan its ball exactly
	bound := hit.(*pointEntry).p.Distance(p)
	ids, _ := ix.Within(p, bound)
	best, bestD := -1, 0.0
	for _, id := range ids {
		d := ix.points[id].Distance(p)
		if best < 0 || d < bestD {
			best, bestD = id, d
		}
	}
	return best
}

// NearestAll maps every query point to its nearest indexed id.
func (ix *Index) NearestAll(ps []Point) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = ix.Nearest(p)
	}
	return out
}

// RadiusPairs returns every ordered pair (i, j) of indexed points with
// distance <= r, in (i, j) lexicographic order. Pairs with i == j are
// included only when loops is true.
func (ix *Index) RadiusPairs(r float64, loops bool) ([][2]int, error) {
	var pairs [][2]int
	for i, p := range ix.points {
		ids, err := ix.Within(p, r)
		if err != nil {
			return nil, err
		}
		for _, j := range ids {
			if i == j && !loops {
				continue
			}
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs, nil
}
