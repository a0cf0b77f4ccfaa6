// Package variable implements VariableGroup: the variable-node half of
// a factor graph (spec.md §4.3). A VariableGroup owns exactly one edge
// role, "vars", backed by a single core.MessageChunk; its extra state is
// the per-node unary evidence (log_unary, merged by summation in log
// space) used both to compute outgoing messages and to read out beliefs.
package variable

import "errors"

// Sentinel errors for variable package operations.
var (
	// ErrBadNumStates indicates num_states < 2.
	ErrBadNumStates = errors.New("variable: num_states must be >= 2")

	// ErrUnaryCountMismatch indicates len(ids) disagrees with the number
	// of unary rows supplied.
	ErrUnaryCountMismatch = errors.New("variable: unary value count must match node id count")

	// ErrUnaryStateMismatch indicates a unary row's length is not num_states.
	ErrUnaryStateMismatch = errors.New("variable: unary row width must equal num_states")

	// ErrConditionStateRange indicates condition_on's state >= num_states.
	ErrConditionStateRange = errors.New("variable: condition state out of range")

	// ErrBadNodeID indicates a node id outside the group's created range.
	ErrBadNodeID = errors.New("variable: node id out of range")

	// ErrBadEdgeRole indicates a role other than the group's sole "vars" role.
	ErrBadEdgeRole = errors.New("variable: unknown edge role")
)
