// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"

	"github.com/paulmach/orb/planar"
)

// DistanceTable is a row-major Rows×Cols table of Euclidean distances.
// Data[i*Cols+j] holds the distance between row point i and column point j.
type DistanceTable struct {
	Rows, Cols int
	Data       []float64
}

// Pairwise returns the distance table between every point of rows and every
// point of cols.
//
// Complexity: O(len(rows)·len(cols)).
func Pairwise(rows, cols []Point) *DistanceTable {
	t := &DistanceTable{
		Rows: len(rows),
		Cols: len(cols),
		Data: make([]float64, len(rows)*len(cols)),
	}
	for i, p := range rows {
		base := i * t.Cols
		for j, q := range cols {
			t.Data[base+j] = p.Distance(q)
		}
	}
	return t
}

// At returns the distance between row point i and column point j.
func (t *DistanceTable) At(i, j int) (float64, error) {
	if i < 0 || i >= t.Rows || j < 0 || j >= t.Cols {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrShape, i, j, t.Rows, t.Cols)
	}
	return t.Data[i*t.Cols+j], nil
}

// Row returns the distances of row point i as a view into Data.
func (t *DistanceTable) Row(i int) []float64 {
	return t.Data[i*t.Cols : (i+1)*t.Cols]
}

// SegmentDistance returns the shortest distance from p to the segment s.
func SegmentDistance(p Point, s Segment) float64 {
	return planar.DistanceFromSegment(s.A.Orb(), s.B.Orb(), p.Orb())
}
