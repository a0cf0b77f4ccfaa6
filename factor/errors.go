// Package factor implements the concrete FactorGroup families:
// Categorical, NoisyOr (and LeakyOr as a NoisyOr with prob_success
// fixed to 1), and Potts (spec.md §4.4). Each family owns one or more
// named edge roles, each backed by a core.MessageChunk, and computes
// its outgoing messages from the family's parametric update rule.
package factor

import "errors"

// Sentinel errors for factor package operations.
var (
	// ErrEmptyProbs indicates a Categorical group was built with no rows.
	ErrEmptyProbs = errors.New("factor: probs must have at least one row")

	// ErrRaggedProbs indicates probs rows have differing lengths.
	ErrRaggedProbs = errors.New("factor: probs rows must all have the same length")

	// ErrProbRange indicates a probs entry outside [0, 1].
	ErrProbRange = errors.New("factor: probs entries must be in [0, 1]")

	// ErrParamRange indicates leak_prob, prob_success, or alpha outside
	// its valid domain.
	ErrParamRange = errors.New("factor: parameter out of domain")

	// ErrBadEdgeRole indicates an edge role name this family does not own.
	ErrBadEdgeRole = errors.New("factor: unknown edge role")

	// ErrNotDegreeTwo indicates a Potts factor whose realized degree is
	// not exactly 2 at finalization.
	ErrNotDegreeTwo = errors.New("factor: potts factor must have degree exactly 2")

	// ErrNotDegreeOne indicates a role whose realized per-node degree
	// differs from the fixed count the family requires: exactly 1 for the
	// categorical input and noisy-OR output roles, exactly n_out for the
	// categorical output role.
	ErrNotDegreeOne = errors.New("factor: role degree differs from the required count per node")
)
