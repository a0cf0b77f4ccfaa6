package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
	"github.com/lgbp/lgbp/variable"
)

// Group is the interface every node group (variable or factor)
// implements so the engine can schedule, finalize, and run message
// passing against it without caring which concrete family it is.
type Group interface {
	Name() string
	Finalize() error
	ComputeMessages() (map[string]*tensor.Dense3, error)
	RoleChunk(role string) (*core.MessageChunk, error)
}

type chunkPairKey struct {
	a, b *core.MessageChunk
}

type peerLink struct {
	ei      *core.EdgeIndex
	peer    *core.MessageChunk
	selfIsA bool
}

// Engine owns the set of scheduled groups, the edge indices wiring them
// together, and the damped iteration loop.
type Engine struct {
	schedule  []Group
	scheduled map[Group]bool
	edgeIdx   map[chunkPairKey]*core.EdgeIndex
	peerLinks map[*core.MessageChunk][]peerLink
	varGroups []*variable.VariableGroup

	finalized bool

	iters     int
	damp      float64
	streakLim int
	tol       float64
	logger    zerolog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithIters overrides the default iteration cap of 1000.
func WithIters(n int) Option { return func(e *Engine) { e.iters = n } }

// WithDamp overrides the default damping factor of 0.8.
func WithDamp(d float64) Option { return func(e *Engine) { e.damp = d } }

// WithStreakLim overrides the default convergence streak length of 10.
func WithStreakLim(n int) Option { return func(e *Engine) { e.streakLim = n } }

// WithTol overrides the default convergence tolerance of 1e-4.
func WithTol(t float64) Option { return func(e *Engine) { e.tol = t } }

// WithLogger injects a zerolog.Logger for per-iteration diagnostics.
// Defaults to zerolog.Nop() (silent).
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.logger = l } }

// New creates an Engine with default iteration parameters.
func New(opts ...Option) *Engine {
	e := &Engine{
		scheduled: make(map[Group]bool),
		edgeIdx:   make(map[chunkPairKey]*core.EdgeIndex),
		peerLinks: make(map[*core.MessageChunk][]peerLink),
		iters:     1000,
		damp:      0.8,
		streakLim: 10,
		tol:       1e-4,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddNodesToSchedule records g in the iteration schedule, in insertion
// order. Idempotent: re-adding an already-scheduled group is a no-op.
func (e *Engine) AddNodesToSchedule(g Group) error {
	if e.finalized {
		return ErrFinalized
	}
	if e.scheduled[g] {
		return nil
	}
	e.scheduled[g] = true
	e.schedule = append(e.schedule, g)
	if vg, ok := g.(*variable.VariableGroup); ok {
		e.varGroups = append(e.varGroups, vg)
	}
	return nil
}

// AddEdge wires variable node varID of varGroup to factor node factorID
// of factorGroup on the given edge role (defaults to "default" if
// empty). Fails if the role's state count conflicts with the
// variable's.
func (e *Engine) AddEdge(varGroup *variable.VariableGroup, varID int, factorGroup Group, factorID int, edgeRole string) error {
	if e.finalized {
		return ErrFinalized
	}
	if edgeRole == "" {
		edgeRole = "default"
	}

	varChunk, err := varGroup.RoleChunk("vars")
	if err != nil {
		return err
	}
	factorChunk, err := factorGroup.RoleChunk(edgeRole)
	if err != nil {
		return err
	}
	if err := factorChunk.SetNumStates(varGroup.NumStates()); err != nil {
		return err
	}

	key := chunkPairKey{a: varChunk, b: factorChunk}
	ei, ok := e.edgeIdx[key]
	if !ok {
		ei = core.NewEdgeIndex(varChunk, factorChunk)
		e.edgeIdx[key] = ei
		e.peerLinks[varChunk] = append(e.peerLinks[varChunk], peerLink{ei: ei, peer: factorChunk, selfIsA: true})
		e.peerLinks[factorChunk] = append(e.peerLinks[factorChunk], peerLink{ei: ei, peer: varChunk, selfIsA: false})
	}
	return ei.AddEdge(varID, factorID)
}

// Finalize transitions the engine from the construction phase to the
// run phase: finalizes every scheduled group, then every edge index.
// Not reversible.
func (e *Engine) Finalize() error {
	if e.finalized {
		return ErrAlreadyFinalized
	}
	if len(e.schedule) == 0 {
		return ErrNoGroups
	}
	for _, g := range e.schedule {
		if err := g.Finalize(); err != nil {
			return err
		}
	}
	for _, ei := range e.edgeIdx {
		if err := ei.Finalize(); err != nil {
			return err
		}
	}
	e.finalized = true
	return nil
}

// DoMessagePassing runs the damped Gauss-Seidel iteration to
// convergence or the iteration cap (spec.md §4.5).
func (e *Engine) DoMessagePassing() error {
	if !e.finalized {
		return ErrNotFinalized
	}

	var prevBel [][][]float64
	streak := 0

	for iter := 0; iter < e.iters; iter++ {
		start := time.Now()

		for _, g := range e.schedule {
			out, err := g.ComputeMessages()
			if err != nil {
				return err
			}
			for role, outMsg := range out {
				chunk, err := g.RoleChunk(role)
				if err != nil {
					return err
				}
				outMsg.ToDistribute()
				for _, link := range e.peerLinks[chunk] {
					if err := link.peer.ToDistributeLayout(); err != nil {
						return err
					}
					if err := link.ei.DeliverDamped(outMsg, link.peer.Msgs(), link.selfIsA, e.damp); err != nil {
						return err
					}
					if err := link.peer.ToComputeLayout(); err != nil {
						return err
					}
				}
			}
		}

		curBel := make([][][]float64, len(e.varGroups))
		for i, vg := range e.varGroups {
			bel, err := vg.GetBeliefs()
			if err != nil {
				return err
			}
			curBel[i] = bel
		}

		maxDiff := 0.0
		if iter > 0 {
			for i, bel := range curBel {
				for n := range bel {
					for s := range bel[n] {
						d := math.Abs(bel[n][s] - prevBel[i][n][s])
						if math.IsNaN(d) {
							return ErrDiverged
						}
						if d > maxDiff {
							maxDiff = d
						}
					}
				}
			}
			if maxDiff <= e.tol {
				streak++
			} else {
				streak = 0
			}
		}

		e.logger.Info().
			Int("iteration", iter).
			Float64("maxDiff", maxDiff).
			Dur("elapsed", time.Since(start)).
			Msg("message passing iteration")

		prevBel = curBel

		if iter > 0 && streak >= e.streakLim {
			e.logger.Info().Int("iteration", iter).Msg("converged")
			break
		}
	}

	for _, g := range e.schedule {
		for _, role := range allRoles(g) {
			chunk, err := g.RoleChunk(role)
			if err != nil {
				continue
			}
			if err := chunk.ToComputeLayout(); err != nil {
				return err
			}
		}
	}
	return nil
}

func allRoles(g Group) []string {
	switch g.(type) {
	case *variable.VariableGroup:
		return []string{"vars"}
	default:
		return []string{"input", "output", "default"}
	}
}
