// SPDX-License-Identifier: MIT

package builder

import "fmt"

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds the cycle C_n.
func Cycle(n int) Constructor {
	return func(builderConfig) (int, func(func(u, v int) error) error, error) {
		if n < minCycleNodes {
			return 0, nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		return n, func(add func(u, v int) error) error {
			for i := 0; i < n; i++ {
				if err := add(i, (i+1)%n); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodCycle, i, (i+1)%n, err)
				}
			}
			return nil
		}, nil
	}
}

// Star returns a Constructor that joins vertex 0 to each of 1..n-1.
func Star(n int) Constructor {
	return func(builderConfig) (int, func(func(u, v int) error) error, error) {
		if n < minPathNodes {
			return 0, nil, fmt.Errorf("Star: n=%d < min=%d: %w", n, minPathNodes, ErrTooFewVertices)
		}
		return n, func(add func(u, v int) error) error {
			for i := 1; i < n; i++ {
				if err := add(0, i); err != nil {
					return fmt.Errorf("Star: AddEdge(0,%d): %w", i, err)
				}
			}
			return nil
		}, nil
	}
}
