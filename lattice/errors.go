// Package lattice adapts grid geometry into factor-graph wiring: given
// a width x height grid of variable nodes, WireGrid wires one Potts
// factor per 4-connected (or, with Conn8, 8-connected) neighbor pair,
// the construction the Potts
// denoising scenarios (spec.md §8 S4, S5) run over.
package lattice

import "errors"

// Sentinel errors for lattice package operations.
var (
	// ErrEmptyGrid indicates width or height is not positive.
	ErrEmptyGrid = errors.New("lattice: width and height must be > 0")

	// ErrNodeCountMismatch indicates the variable id slice passed to
	// WireGrid does not have width*height entries.
	ErrNodeCountMismatch = errors.New("lattice: variable id count must equal width*height")
)
