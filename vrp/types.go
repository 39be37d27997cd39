// SPDX-License-Identifier: MIT

package vrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/henghenghahei849/gym-flock/matrix"
)

var (
	// ErrSolverUnavailable is returned by the Unavailable solver.
	ErrSolverUnavailable = errors.New("vrp: route solver unavailable")

	// ErrInfeasible indicates that no plan satisfies the data model.
	ErrInfeasible = errors.New("vrp: no feasible plan")

	// ErrBadInput indicates a malformed Input or DataModel.
	ErrBadInput = errors.New("vrp: invalid routing input")
)

const (
	// Depot is the node index of the virtual depot.
	Depot = 0

	// DepotDetour is the cost of leaving the depot towards a node that is not
	// a vehicle start.
	DepotDetour = 100000.0

	// DefaultPenaltyMultiplier is the drop penalty of one unvisited target.
	DefaultPenaltyMultiplier = 500.0
)

// Input is the environment state a data model is built from. Per-target
// slices are indexed by target id.
type Input struct {
	// Cost is the T×T target time matrix.
	Cost *matrix.Dense
	// Starts holds the current target of every vehicle.
	Starts []int
	// NeedVisit marks targets whose drop is penalized.
	NeedVisit []bool
	Visited   []bool
	// Horizon is the time budget of every vehicle.
	Horizon           int
	PenaltyMultiplier float64
}

// DataModel is the depot-augmented routing problem.
type DataModel struct {
	Cost      *matrix.Dense // (T+1)×(T+1), row = from, col = to
	Vehicles  int
	Starts    []int     // start node of every vehicle (target + 1)
	Penalties []float64 // drop penalty per node, 0 for the depot
	Horizon   int
}

// Nodes returns T+1.
func (d *DataModel) Nodes() int { return d.Cost.Rows() }

func (d *DataModel) validate() error {
	if d == nil || d.Cost == nil {
		return fmt.Errorf("%w: nil data model", ErrBadInput)
	}
	n := d.Cost.Rows()
	switch {
	case n < 2 || d.Cost.Cols() != n:
		return fmt.Errorf("%w: cost matrix %dx%d", ErrBadInput, n, d.Cost.Cols())
	case d.Vehicles < 1 || len(d.Starts) != d.Vehicles:
		return fmt.Errorf("%w: %d vehicles, %d starts", ErrBadInput, d.Vehicles, len(d.Starts))
	case len(d.Penalties) != n:
		return fmt.Errorf("%w: %d penalties for %d nodes", ErrBadInput, len(d.Penalties), n)
	case d.Horizon < 0:
		return fmt.Errorf("%w: horizon %d", ErrBadInput, d.Horizon)
	}
	for v, s := range d.Starts {
		if s <= Depot || s >= n {
			return fmt.Errorf("%w: vehicle %d starts at node %d", ErrBadInput, v, s)
		}
		if c := d.Cost.Row(Depot)[s]; c > float64(d.Horizon) {
			return fmt.Errorf("%w: vehicle %d cannot reach its start (cost %v, horizon %d)", ErrInfeasible, v, c, d.Horizon)
		}
	}
	return nil
}

// Solver computes per-vehicle routes over a data model.
type Solver interface {
	// Solve returns one route of target indices per vehicle, depot removed.
	Solve(ctx context.Context, dm *DataModel) ([][]int, error)
}

// Unavailable stands in for a solver that is not part of the build.
type Unavailable struct {
	Reason string
}

// Solve always fails with ErrSolverUnavailable.
func (u Unavailable) Solve(context.Context, *DataModel) ([][]int, error) {
	return nil, fmt.Errorf("%w: %s", ErrSolverUnavailable, u.Reason)
}
