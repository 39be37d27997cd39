// SPDX-License-Identifier: MIT

package action

import "errors"

// Sentinel errors for the action space.
var (
	// ErrActionOverflow indicates a robot's node has more outgoing edges than K.
	ErrActionOverflow = errors.New("action: node degree exceeds action count")

	// ErrInvalidAction indicates an action index outside [0, K).
	ErrInvalidAction = errors.New("action: index out of range")

	// ErrRobotCount indicates a per-robot slice of the wrong length.
	ErrRobotCount = errors.New("action: wrong number of robots")

	// ErrBadActionCount indicates K < 1.
	ErrBadActionCount = errors.New("action: action count must be positive")
)

// Table holds K candidate destinations for each robot, flattened row-major.
type Table struct {
	k       int
	current []int
	dest    []int
}

// K returns the number of actions per robot.
func (t *Table) K() int { return t.k }

// Robots returns the number of robots.
func (t *Table) Robots() int { return len(t.current) }

// Current returns the target robot r occupied when the table was built.
func (t *Table) Current(r int) int { return t.current[r] }

// Row returns robot r's candidate destinations as a view.
func (t *Table) Row(r int) []int { return t.dest[r*t.k : (r+1)*t.k] }
