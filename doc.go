// Package lgbp (lvlath-bp) is a loopy belief propagation engine over
// discrete factor graphs.
//
// 🚀 What is lgbp?
//
//	A small, vectorised message-passing runtime that brings together:
//
//	  • Variable & factor node groups, stored as rectangular tensors
//	  • Categorical, Potts, and noisy-OR factor families
//	  • A damped, schedule-ordered loopy BP loop under sum- or max-product
//
// ✨ Why choose lgbp?
//
//   - Batched      — every incoming-message update is one dense array op
//   - Deterministic — Gauss-Seidel schedule in insertion order, no surprises
//   - Composable   — functional options throughout, same shape as wiring a graph
//
// Under the hood, everything is organized under sibling subpackages:
//
//	core/     — Semiring, MessageChunk, EdgeIndex
//	tensor/   — dense compute/distribute-layout storage backing MessageChunk
//	variable/ — VariableGroup: unaries, conditioning, belief readout
//	factor/   — FactorGroup families: Categorical, Potts, NoisyOr, LeakyOr
//	engine/   — schedule, finalize, damped iteration, convergence
//	lattice/  — grid-wiring convenience for Potts-on-a-lattice models
//
// Quick ASCII example, a Potts chain over three pixels:
//
//	    v0 ──α── v1 ──α── v2
//
//	each edge is a Potts factor preferring its endpoints to share a state.
//
// Worked end-to-end examples live in the tests: lgbp_test.go (categorical
// conditioning, noisy-OR), engine/engine_test.go (unaries-only, Potts
// max-product), and lattice/grid_test.go (Potts over a grid).
//
//	go get github.com/lgbp/lgbp/engine
package lgbp
