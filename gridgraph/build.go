// SPDX-License-Identifier: MIT

package gridgraph

import (
	"fmt"
	"math/rand"

	"github.com/henghenghahei849/gym-flock/core"
	"github.com/henghenghahei849/gym-flock/geom"
)

// Build generates a coverage map from spec using rng for the road network.
// See the package documentation for the stage breakdown.
func Build(spec Spec, rng *rand.Rand) (*Map, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	basis, err := spec.Lattice.Basis(spec.Resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: lattice %q", err, spec.Lattice)
	}

	pts := RejectObstacles(Lattice(spec.Bounds, basis), spec.Obstacles)

	var roads []geom.Segment
	if spec.Cities > 0 {
		roads = GenerateRoads(rng, spec.Cities, spec.Bounds, spec.IntercityRadius)
		ri, err := geom.NewRoadIndex(roads, spec.RoadTolerance)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
		}
		pts = ri.Filter(pts)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no lattice point survived filtering", ErrDegenerateMap)
	}

	m, err := FromPoints(pts, spec.MotionRadius)
	if err != nil {
		return nil, err
	}
	m.Roads = roads
	return m, nil
}

// FromPoints joins pts within radius (self-loops included), keeps the largest
// connected component and re-indexes it in ascending original order.
//
// Complexity: O(n log n + E) on average with the R-tree radius queries.
func FromPoints(pts []geom.Point, radius float64) (*Map, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrDegenerateMap)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: motion radius %v", ErrBadSpec, radius)
	}
	pairs, err := geom.NewIndex(pts).RadiusPairs(radius, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	full, err := core.NewGraph(len(pts), core.WithLoops())
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			if err = full.AddEdge(p[0], p[1]); err != nil {
				return nil, err
			}
		}
	}
	if err = full.AddLoops(); err != nil {
		return nil, err
	}

	keep := full.LargestComponent()
	if len(keep) < 2 {
		return nil, fmt.Errorf("%w: largest component has %d target(s) and no edges", ErrDegenerateMap, len(keep))
	}
	motion, err := full.Induced(keep)
	if err != nil {
		return nil, err
	}
	targets := make([]geom.Point, len(keep))
	for i, v := range keep {
		targets[i] = pts[v]
	}
	return &Map{Targets: targets, Motion: motion}, nil
}

func (s Spec) validate() error {
	switch {
	case s.Bounds.Empty():
		return fmt.Errorf("%w: empty bounds", ErrBadSpec)
	case s.Resolution <= 0:
		return fmt.Errorf("%w: resolution %v", ErrBadSpec, s.Resolution)
	case s.MotionRadius <= 0:
		return fmt.Errorf("%w: motion radius %v", ErrBadSpec, s.MotionRadius)
	case s.Cities < 0 || s.Cities == 1:
		return fmt.Errorf("%w: cities %d (want 0 or >= 2)", ErrBadSpec, s.Cities)
	case s.Cities > 0 && s.RoadTolerance < 0:
		return fmt.Errorf("%w: road tolerance %v", ErrBadSpec, s.RoadTolerance)
	}
	return nil
}
