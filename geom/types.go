// SPDX-License-Identifier: MIT

package geom

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Sentinel errors for geometry helpers.
var (
	// ErrShape indicates a flat table was addressed outside its declared shape.
	ErrShape = errors.New("geom: index outside table shape")

	// ErrNegativeRadius is returned when a query radius or tolerance is negative.
	ErrNegativeRadius = errors.New("geom: radius must be non-negative")
)

// Point is a position in the plane.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Orb converts p to an orb.Point.
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

// FromOrb converts an orb.Point to a Point.
func FromOrb(p orb.Point) Point { return Point{X: p[0], Y: p[1]} }

// Rect is an axis-aligned rectangle, inclusive on all sides.
type Rect struct {
	Min Point `yaml:"min" json:"min"`
	Max Point `yaml:"max" json:"max"`
}

// NewRect returns the rectangle spanning the two corners in any order.
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Bound converts r to an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{Min: r.Min.Orb(), Max: r.Max.Orb()}
}

// Contains reports whether p lies inside r (boundary included).
func (r Rect) Contains(p Point) bool { return r.Bound().Contains(p.Orb()) }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return FromOrb(r.Bound().Center()) }

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Segment is a straight road piece between two points.
type Segment struct {
	A, B Point
}

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return s.A.Distance(s.B) }
