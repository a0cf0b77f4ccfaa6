// Package engine orchestrates a factor graph built from variable and
// factor groups: wiring edges between them, finalizing every group and
// edge index, and driving the damped Gauss-Seidel message-passing loop
// to convergence (spec.md §4.5).
package engine

import "errors"

// Sentinel errors for engine package operations.
var (
	// ErrNoGroups indicates Finalize was called with nothing scheduled.
	ErrNoGroups = errors.New("engine: no groups scheduled")

	// ErrAlreadyFinalized indicates Finalize was called more than once.
	ErrAlreadyFinalized = errors.New("engine: already finalized")

	// ErrNotFinalized indicates DoMessagePassing ran before Finalize.
	ErrNotFinalized = errors.New("engine: not finalized")

	// ErrFinalized indicates a construction-phase call (AddEdge,
	// AddNodesToSchedule) ran after Finalize.
	ErrFinalized = errors.New("engine: already finalized, no further wiring permitted")

	// ErrDiverged indicates a convergence diff went NaN.
	ErrDiverged = errors.New("engine: convergence diagnostic is NaN")
)
