// SPDX-License-Identifier: MIT

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is smaller
// than the allowed minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates that a probability is outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrConstructFailed indicates a nil constructor was passed to Build.
var ErrConstructFailed = errors.New("builder: construction failed")
