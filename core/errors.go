// Package core defines the Semiring, MessageChunk, and EdgeIndex types
// that underlie every node group in the engine: the rectangular,
// dual-layout message tensor (C1), and the bipartite edge table mapping
// between pairs of chunks (C2).
//
// Errors:
//
//	ErrAlreadyFinalized  - mutation attempted after finalize().
//	ErrNotFinalized      - an operation requiring finalize() ran before it.
//	ErrEmptyChunk        - finalize() called on a chunk with zero nodes.
//	ErrNumStatesConflict - set_num_states called twice with conflicting values.
//	ErrBadNumStates      - num_states <= 0.
//	ErrBadSemiring       - bp_algo not in {sum, max}.
//
// ERROR PRIORITY (documented): phase violation ->
// shape/domain mismatch -> numerical (NaN).
package core

import "errors"

// Sentinel errors for core package operations.
var (
	// ErrAlreadyFinalized indicates a mutation (create/condition/edge)
	// was attempted after finalize().
	ErrAlreadyFinalized = errors.New("core: already finalized")

	// ErrNotFinalized indicates an operation requiring finalize() ran
	// before finalize() was called.
	ErrNotFinalized = errors.New("core: not finalized")

	// ErrEmptyChunk indicates finalize() was called on a MessageChunk
	// with zero created nodes.
	ErrEmptyChunk = errors.New("core: message chunk has no nodes")

	// ErrNumStatesConflict indicates an edge role's discovered num_states
	// does not match a previously set value.
	ErrNumStatesConflict = errors.New("core: conflicting number of states")

	// ErrBadNumStates indicates a non-positive number of states.
	ErrBadNumStates = errors.New("core: number of states must be > 0")

	// ErrBadSemiring indicates bp_algo was not "sum" or "max".
	ErrBadSemiring = errors.New("core: bp_algo must be \"sum\" or \"max\"")

	// ErrBadNodeID indicates a node id outside [0, num_nodes).
	ErrBadNodeID = errors.New("core: node id out of range")

	// ErrLayoutMismatch indicates an operation requiring one message
	// layout ran while the chunk held the other.
	ErrLayoutMismatch = errors.New("core: wrong message layout")

	// ErrBadEdgeRole indicates an edge role name unknown to the peer
	// FactorGroup.
	ErrBadEdgeRole = errors.New("core: unknown edge role")
)

// MsgMin and MsgMax bound every message entry after finalization
// (spec.md §3 invariant 1).
const (
	MsgMin = 1e-8
	MsgMax = 1 - 1e-8
)
