// Package tensor provides the dense, flat-slice array backing the engine's
// message storage: a 3-D logical array of shape [D, S, N] (degree slot,
// state, node) that can be reshaped between a "compute" layout — natural
// for per-node, per-slot numeric kernels — and a "distribute" layout of
// shape [D*N, S], whose rows are contiguous and directly indexable by the
// flat edge offsets the core package's EdgeIndex precomputes.
//
// Dense3 is adapted from the row-major, flat-slice Dense matrix found in
// graph libraries in this codebase's lineage: a single []float64 backing
// store, bounds-checked accessors, and an explicit, documented transpose
// when no zero-copy reshape is available (Go slices have no stride
// metadata, so switching layout is a real data permutation, not a view).
package tensor
