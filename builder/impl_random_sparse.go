// SPDX-License-Identifier: MIT

package builder

import "fmt"

const methodRandomSparse = "RandomSparse"

// RandomSparse returns a Constructor for an Erdős–Rényi G(n,p) graph whose
// pairs i<j are sampled in increasing order from the configured stream.
func RandomSparse(n int, p float64) Constructor {
	return func(cfg builderConfig) (int, func(func(u, v int) error) error, error) {
		if n < 1 {
			return 0, nil, fmt.Errorf("%s: n=%d: %w", methodRandomSparse, n, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return 0, nil, fmt.Errorf("%s: p=%v: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		return n, func(add func(u, v int) error) error {
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if cfg.rng.Float64() >= p {
						continue
					}
					if err := add(i, j); err != nil {
						return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodRandomSparse, i, j, err)
					}
				}
			}
			return nil
		}, nil
	}
}
