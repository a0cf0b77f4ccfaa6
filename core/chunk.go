package core

import (
	"math/rand"

	"github.com/lgbp/lgbp/tensor"
)

// InitStrategy selects how a MessageChunk's real (non-padded) message
// slots are initialized at finalize().
type InitStrategy int

const (
	// InitRandom draws each entry from msgInitMin + msgInitRange*U[0,1).
	InitRandom InitStrategy = iota
	// InitUniform sets every entry to 1/NumStates.
	InitUniform
)

// MessageChunk is the rectangular, dual-layout storage for every
// incoming message to one edge role of one node group (spec.md §3, §4.1).
// Its identity for EdgeIndex map keys is its own pointer: Go pointers are
// stable for the object's lifetime, so no separate id counter is needed
// (spec.md §9's "Global state" note explicitly allows this substitution).
type MessageChunk struct {
	name string

	numStates    int
	numStatesSet bool

	numNodes  int
	degree    []int
	maxDegree int

	msgs *tensor.Dense3

	padMsgVal    []float64
	initStrategy InitStrategy
	initMin      float64
	initRange    float64
	rng          *rand.Rand

	finalized bool
}

// NewMessageChunk creates a MessageChunk. numStates may be 0 to mean
// "not yet known" (a factor role discovers it from the first variable it
// is wired to); a positive value fixes it immediately (used for variable
// groups, whose num_states is always known up front).
func NewMessageChunk(name string, numStates int) *MessageChunk {
	return &MessageChunk{
		name:         name,
		numStates:    numStates,
		numStatesSet: numStates > 0,
		initStrategy: InitRandom,
		initMin:      0.4,
		initRange:    0.2,
	}
}

// Name returns the chunk's identifier, used only for diagnostics.
func (c *MessageChunk) Name() string { return c.name }

// NumStates returns the chunk's state cardinality, or 0 if undiscovered.
func (c *MessageChunk) NumStates() int { return c.numStates }

// SetNumStates fixes the chunk's state cardinality. Permitted only
// before finalization; if already set, the new value must match.
func (c *MessageChunk) SetNumStates(s int) error {
	if c.finalized {
		return ErrAlreadyFinalized
	}
	if s <= 0 {
		return ErrBadNumStates
	}
	if c.numStatesSet {
		if c.numStates != s {
			return ErrNumStatesConflict
		}
		return nil
	}
	c.numStates = s
	c.numStatesSet = true
	return nil
}

// SetPadMsgVal overrides the default 1/NumStates pad value used to fill
// slots beyond each node's real degree. len(vals) must equal NumStates
// at finalize time; the caller is responsible for that match (factor
// families set this once, at construction, before NumStates may even be
// known yet for input/output roles discovered later).
func (c *MessageChunk) SetPadMsgVal(vals []float64) { c.padMsgVal = vals }

// SetInitStrategy overrides the default random-init strategy.
func (c *MessageChunk) SetInitStrategy(s InitStrategy) { c.initStrategy = s }

// SetInitRange overrides the default random-init range (default 0.2).
func (c *MessageChunk) SetInitRange(r float64) { c.initRange = r }

// SetInitMin overrides the default random-init minimum (default 0.4).
func (c *MessageChunk) SetInitMin(m float64) { c.initMin = m }

// SetRand injects a deterministic random source for reproducible
// initialization (spec.md §8: "reproducible by fixing the random seed").
func (c *MessageChunk) SetRand(r *rand.Rand) { c.rng = r }

// NumNodes returns the number of nodes created in this chunk.
func (c *MessageChunk) NumNodes() int { return c.numNodes }

// MaxDegree returns the current maximum per-node degree on this role.
func (c *MessageChunk) MaxDegree() int { return c.maxDegree }

// Degree returns the current edge count of node id on this role.
func (c *MessageChunk) Degree(id int) (int, error) {
	if id < 0 || id >= c.numNodes {
		return 0, ErrBadNodeID
	}
	return c.degree[id], nil
}

// CreateEntries extends the chunk by k nodes, returning their dense ids.
func (c *MessageChunk) CreateEntries(k int) ([]int, error) {
	if c.finalized {
		return nil, ErrAlreadyFinalized
	}
	ids := make([]int, k)
	for i := 0; i < k; i++ {
		ids[i] = c.numNodes + i
	}
	c.numNodes += k
	c.degree = append(c.degree, make([]int, k)...)
	return ids, nil
}

// NextSlot reads node id's current degree (its next free slot index),
// then increments the degree and, if needed, MaxDegree. Used by
// EdgeIndex.AddEdge to allocate the slot an edge occupies on this role.
func (c *MessageChunk) NextSlot(id int) (int, error) {
	if c.finalized {
		return 0, ErrAlreadyFinalized
	}
	if id < 0 || id >= c.numNodes {
		return 0, ErrBadNodeID
	}
	slot := c.degree[id]
	c.degree[id]++
	if c.degree[id] > c.maxDegree {
		c.maxDegree = c.degree[id]
	}
	return slot, nil
}

// Finalized reports whether Finalize has run.
func (c *MessageChunk) Finalized() bool { return c.finalized }

// Msgs returns the allocated incoming-message tensor. Valid only after
// Finalize.
func (c *MessageChunk) Msgs() *tensor.Dense3 { return c.msgs }

// Finalize allocates msgs of shape [MaxDegree, NumStates, NumNodes],
// fills real slots per the chunk's init strategy, and overwrites padded
// slots ([degree[i], MaxDegree) for each node i) with PadMsgVal
// (spec.md §4.1 "Key algorithm — initial pad fill").
func (c *MessageChunk) Finalize() error {
	if c.finalized {
		return ErrAlreadyFinalized
	}
	if c.numNodes == 0 {
		return ErrEmptyChunk
	}
	if !c.numStatesSet || c.numStates <= 0 {
		return ErrBadNumStates
	}

	msgs, err := tensor.NewDense3(c.maxDegree, c.numStates, c.numNodes)
	if err != nil {
		return err
	}

	pad := c.padMsgVal
	if pad == nil {
		pad = make([]float64, c.numStates)
		uniform := 1.0 / float64(c.numStates)
		for i := range pad {
			pad[i] = uniform
		}
	}

	rng := c.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	for i := 0; i < c.numNodes; i++ {
		realDeg := c.degree[i]
		for d := 0; d < c.maxDegree; d++ {
			if d < realDeg {
				vals := c.initColumn(rng)
				if err := msgs.SetColCompute(d, i, vals); err != nil {
					return err
				}
			} else {
				if err := msgs.SetColCompute(d, i, pad); err != nil {
					return err
				}
			}
		}
	}

	c.msgs = msgs
	c.finalized = true
	return nil
}

func (c *MessageChunk) initColumn(rng *rand.Rand) []float64 {
	vals := make([]float64, c.numStates)
	switch c.initStrategy {
	case InitUniform:
		u := 1.0 / float64(c.numStates)
		for i := range vals {
			vals[i] = u
		}
	default: // InitRandom
		for i := range vals {
			vals[i] = c.initMin + c.initRange*rng.Float64()
		}
	}
	return vals
}

// Clamp clips msg's entries to [MsgMin, MsgMax] and, if anything was
// clipped, renormalizes every (d, n) column to sum to 1. This is the same
// clip-and-renormalize (tensor.Dense3.Clamp with MsgMin/MsgMax) that each
// node group's ComputeMessages applies directly to its freshly computed
// outgoing tensors before handing them to the engine (spec.md §4.4.4).
func (c *MessageChunk) Clamp(msg *tensor.Dense3) error {
	return msg.Clamp(MsgMin, MsgMax)
}

// ToDistributeLayout switches the chunk's own msgs tensor to the
// distribute layout; idempotent.
func (c *MessageChunk) ToDistributeLayout() error {
	if !c.finalized {
		return ErrNotFinalized
	}
	c.msgs.ToDistribute()
	return nil
}

// ToComputeLayout switches the chunk's own msgs tensor to the compute
// layout; idempotent.
func (c *MessageChunk) ToComputeLayout() error {
	if !c.finalized {
		return ErrNotFinalized
	}
	c.msgs.ToCompute()
	return nil
}
