// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// segmentEntry wraps a road segment for R-tree storage. The stored box is the
// segment's bounding box grown by the index tolerance.
type segmentEntry struct {
	seg  Segment
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *segmentEntry) Bounds() rtreego.Rect { return e.bbox }

// RoadIndex answers "is this point within tol of some road" queries.
type RoadIndex struct {
	tree *rtreego.Rtree
	tol  float64
	n    int
}

// NewRoadIndex indexes segs for proximity queries of at most tol.
func NewRoadIndex(segs []Segment, tol float64) (*RoadIndex, error) {
	if tol < 0 {
		return nil, ErrNegativeRadius
	}
	tree := rtreego.NewTree(2, 25, 50)
	pad := tol + pointTol
	for _, s := range segs {
		minX, maxX := math.Min(s.A.X, s.B.X)-pad, math.Max(s.A.X, s.B.X)+pad
		minY, maxY := math.Min(s.A.Y, s.B.Y)-pad, math.Max(s.A.Y, s.B.Y)+pad
		bbox, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
		if err != nil {
			return nil, err
		}
		tree.Insert(&segmentEntry{seg: s, bbox: bbox})
	}
	return &RoadIndex{tree: tree, tol: tol, n: len(segs)}, nil
}

// Len returns the number of indexed segments.
func (ri *RoadIndex) Len() int { return ri.n }

// Near reports whether p lies within the index tolerance of any segment.
func (ri *RoadIndex) Near(p Point) bool {
	for _, h := range ri.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(pointTol)) {
		if SegmentDistance(p, h.(*segmentEntry).seg) <= ri.tol {
			return true
		}
	}
	return false
}

// Filter returns the points of ps that are Near some road, in input order.
func (ri *RoadIndex) Filter(ps []Point) []Point {
	out := make([]Point, 0, len(ps))
	for _, p := range ps {
		if ri.Near(p) {
			out = append(out, p)
		}
	}
	return out
}
