// SPDX-License-Identifier: MIT

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds the simple path 0-1-…-(n-1).
func Path(n int) Constructor {
	return func(builderConfig) (int, func(func(u, v int) error) error, error) {
		if n < minPathNodes {
			return 0, nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		return n, func(add func(u, v int) error) error {
			for i := 1; i < n; i++ {
				if err := add(i-1, i); err != nil {
					return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodPath, i-1, i, err)
				}
			}
			return nil
		}, nil
	}
}
