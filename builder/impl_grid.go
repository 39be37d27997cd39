// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/henghenghahei849/gym-flock/geom"
)

const methodGrid = "Grid"

// Grid returns a Constructor for a rows×cols 4-neighbour lattice. Vertex
// r*cols+c sits at row r, column c.
func Grid(rows, cols int) Constructor {
	return func(builderConfig) (int, func(func(u, v int) error) error, error) {
		if rows < 1 || cols < 1 || rows*cols < minPathNodes {
			return 0, nil, fmt.Errorf("%s: %dx%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		return rows * cols, func(add func(u, v int) error) error {
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					v := r*cols + c
					if c+1 < cols {
						if err := add(v, v+1); err != nil {
							return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodGrid, v, v+1, err)
						}
					}
					if r+1 < rows {
						if err := add(v, v+cols); err != nil {
							return fmt.Errorf("%s: AddEdge(%d,%d): %w", methodGrid, v, v+cols, err)
						}
					}
				}
			}
			return nil
		}, nil
	}
}

// GridPoints returns the positions matching Grid(rows, cols) with the given
// spacing, origin at vertex 0, x growing with the column.
func GridPoints(rows, cols int, spacing float64) []geom.Point {
	pts := make([]geom.Point, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pts = append(pts, geom.Point{X: float64(c) * spacing, Y: float64(r) * spacing})
		}
	}
	return pts
}
