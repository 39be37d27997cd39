// SPDX-License-Identifier: MIT

package gridgraph

import (
	"errors"
	"math"

	"github.com/henghenghahei849/gym-flock/core"
	"github.com/henghenghahei849/gym-flock/geom"
)

// Sentinel errors for map construction.
var (
	// ErrDegenerateMap indicates no viable target component could be built.
	ErrDegenerateMap = errors.New("gridgraph: degenerate map")

	// ErrBadSpec indicates a geometric parameter is out of range.
	ErrBadSpec = errors.New("gridgraph: invalid map spec")
)

// LatticeKind selects the lattice basis.
type LatticeKind string

const (
	// Square uses the basis (r,0), (0,r).
	Square LatticeKind = "square"
	// Triangular uses the basis (r,0), (r/2, r·√3/2).
	Triangular LatticeKind = "triangular"
)

// Basis returns the two lattice vectors of kind k at resolution r.
func (k LatticeKind) Basis(r float64) ([2]geom.Point, error) {
	switch k {
	case Square, "":
		return [2]geom.Point{{X: r}, {Y: r}}, nil
	case Triangular:
		return [2]geom.Point{{X: r}, {X: r / 2, Y: r * math.Sqrt(3) / 2}}, nil
	default:
		return [2]geom.Point{}, ErrBadSpec
	}
}

// Spec describes the geometry of one coverage map.
type Spec struct {
	Bounds          geom.Rect
	Resolution      float64
	Lattice         LatticeKind
	Cities          int // 0 keeps the whole lattice
	IntercityRadius float64
	RoadTolerance   float64
	MotionRadius    float64
	Obstacles       []geom.Rect
}

// Map is a connected set of targets and the motion graph over them.
// Motion carries a self-loop on every target.
type Map struct {
	Targets []geom.Point
	Motion  *core.Graph
	Roads   []geom.Segment

	index *geom.Index
}

// NumTargets returns the number of targets.
func (m *Map) NumTargets() int { return len(m.Targets) }

// Index returns a spatial index over Targets, built on first use.
func (m *Map) Index() *geom.Index {
	if m.index == nil {
		m.index = geom.NewIndex(m.Targets)
	}
	return m.index
}
