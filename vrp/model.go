// SPDX-License-Identifier: MIT

package vrp

import (
	"fmt"

	"github.com/henghenghahei849/gym-flock/matrix"
)

// BuildDataModel augments in.Cost with the depot and decouples visited
// targets.
//
// Layout of the result (T targets, node = target + 1):
//   - row 0: 0 towards the depot and every vehicle start, DepotDetour elsewhere;
//   - column 0: 0 (free return to the depot);
//   - a visited target that is not a start has every row and column entry
//     replaced by PenaltyMultiplier;
//   - Penalties[node] = PenaltyMultiplier if the target needs a visit, else 0.
//
// Complexity: O(T²).
func BuildDataModel(in Input) (*DataModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := in.Cost.Rows()
	mult := in.PenaltyMultiplier
	cost, err := matrix.NewDense(t+1, t+1)
	if err != nil {
		return nil, err
	}

	start := make([]bool, t)
	for _, s := range in.Starts {
		start[s] = true
	}
	ignore := func(i int) bool { return in.Visited[i] && !start[i] }
	for i := 0; i < t; i++ {
		src, dst := in.Cost.Row(i), cost.Row(i+1)
		for j := 0; j < t; j++ {
			if ignore(i) || ignore(j) {
				dst[j+1] = mult
			} else {
				dst[j+1] = src[j]
			}
		}
	}
	depot := cost.Row(Depot)
	for j := 1; j <= t; j++ {
		depot[j] = DepotDetour
	}

	dm := &DataModel{
		Cost:      cost,
		Vehicles:  len(in.Starts),
		Starts:    make([]int, len(in.Starts)),
		Penalties: make([]float64, t+1),
		Horizon:   in.Horizon,
	}
	for v, s := range in.Starts {
		depot[s+1] = 0
		dm.Starts[v] = s + 1
	}
	for i, need := range in.NeedVisit {
		if need {
			dm.Penalties[i+1] = mult
		}
	}
	return dm, nil
}

func (in Input) validate() error {
	if in.Cost == nil {
		return fmt.Errorf("%w: nil cost matrix", ErrBadInput)
	}
	t := in.Cost.Rows()
	switch {
	case in.Cost.Cols() != t:
		return fmt.Errorf("%w: cost matrix %dx%d", ErrBadInput, t, in.Cost.Cols())
	case len(in.NeedVisit) != t || len(in.Visited) != t:
		return fmt.Errorf("%w: %d targets, %d need flags, %d visited flags", ErrBadInput, t, len(in.NeedVisit), len(in.Visited))
	case len(in.Starts) == 0:
		return fmt.Errorf("%w: no vehicles", ErrBadInput)
	case in.Horizon < 0:
		return fmt.Errorf("%w: horizon %d", ErrBadInput, in.Horizon)
	case !(in.PenaltyMultiplier > 0):
		return fmt.Errorf("%w: penalty multiplier %v", ErrBadInput, in.PenaltyMultiplier)
	}
	for v, s := range in.Starts {
		if s < 0 || s >= t {
			return fmt.Errorf("%w: vehicle %d starts at target %d of %d", ErrBadInput, v, s, t)
		}
	}
	return nil
}
