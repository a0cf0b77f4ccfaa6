package variable

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
)

const unaryClipMin = 1e-12
const unaryClipMax = 1 - 1e-12

// VariableGroup is a set of identically-sized discrete variable nodes
// sharing one "vars" edge role (spec.md §3, §4.3).
type VariableGroup struct {
	name      string
	numStates int
	chunk     *core.MessageChunk

	logUnary map[int][]float64
}

// Option configures a VariableGroup at construction.
type Option func(*VariableGroup)

// WithInitStrategy overrides the incoming-message init strategy used
// when the group's chunk is finalized (default: random).
func WithInitStrategy(s core.InitStrategy) Option {
	return func(g *VariableGroup) { g.chunk.SetInitStrategy(s) }
}

// NewVariableGroup creates a VariableGroup of cardinality numStates (>= 2).
func NewVariableGroup(name string, numStates int, opts ...Option) (*VariableGroup, error) {
	if numStates < 2 {
		return nil, ErrBadNumStates
	}
	g := &VariableGroup{
		name:      name,
		numStates: numStates,
		chunk:     core.NewMessageChunk(name+"_vars", numStates),
		logUnary:  make(map[int][]float64),
	}
	// Pad value for a variable's own incoming slots is the neutral
	// uniform distribution (spec.md §9 "Padding over dynamic fan-in").
	pad := make([]float64, numStates)
	u := 1.0 / float64(numStates)
	for i := range pad {
		pad[i] = u
	}
	g.chunk.SetPadMsgVal(pad)
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the group's name.
func (g *VariableGroup) Name() string { return g.name }

// NumStates returns the group's state cardinality.
func (g *VariableGroup) NumStates() int { return g.numStates }

// Chunk returns the "vars" role's MessageChunk, for wiring edges.
func (g *VariableGroup) Chunk() *core.MessageChunk { return g.chunk }

// RoleChunk returns the MessageChunk backing "vars", the group's only role.
func (g *VariableGroup) RoleChunk(role string) (*core.MessageChunk, error) {
	if role != "vars" {
		return nil, ErrBadEdgeRole
	}
	return g.chunk, nil
}

// CreateNodes extends the group by k variable nodes, returning dense ids.
func (g *VariableGroup) CreateNodes(k int) ([]int, error) {
	return g.chunk.CreateEntries(k)
}

// Finalize allocates and initializes the group's incoming-message tensor.
func (g *VariableGroup) Finalize() error {
	return g.chunk.Finalize()
}

// AddUnaries attaches unary potentials to node ids. vals[i] is the
// potential row for ids[i], of length NumStates. A node that already
// carries a unary has the new log potential summed into its existing
// one (product in probability space), per spec.md §4.3.
func (g *VariableGroup) AddUnaries(ids []int, vals [][]float64) error {
	if len(ids) != len(vals) {
		return ErrUnaryCountMismatch
	}
	for i, id := range ids {
		if id < 0 || id >= g.chunk.NumNodes() {
			return ErrBadNodeID
		}
		row := vals[i]
		if len(row) != g.numStates {
			return ErrUnaryStateMismatch
		}
		logRow, err := normalizeAndLog(row)
		if err != nil {
			return err
		}
		if existing, ok := g.logUnary[id]; ok {
			for s := range existing {
				existing[s] += logRow[s]
			}
		} else {
			g.logUnary[id] = logRow
		}
	}
	return nil
}

func normalizeAndLog(row []float64) ([]float64, error) {
	cp := append([]float64(nil), row...)
	total := floats.Sum(cp)
	if total != 0 {
		floats.Scale(1/total, cp)
	}
	for i, v := range cp {
		if v < unaryClipMin {
			cp[i] = unaryClipMin
		} else if v > unaryClipMax {
			cp[i] = unaryClipMax
		}
	}
	total = floats.Sum(cp)
	floats.Scale(1/total, cp)
	out := make([]float64, len(cp))
	for i, v := range cp {
		out[i] = math.Log(v)
	}
	return out, nil
}

// ConditionOn attaches a one-hot unary at state to every listed node id,
// hard-conditioning it (with clipping, so belief computation never
// takes log(0)).
func (g *VariableGroup) ConditionOn(ids []int, state int) error {
	if state < 0 || state >= g.numStates {
		return ErrConditionStateRange
	}
	vals := make([][]float64, len(ids))
	for i := range ids {
		row := make([]float64, g.numStates)
		row[state] = 1.0
		vals[i] = row
	}
	return g.AddUnaries(ids, vals)
}

func (g *VariableGroup) unaryFor(n int) []float64 {
	if row, ok := g.logUnary[n]; ok {
		return row
	}
	return nil
}

// ComputeMessages computes the outgoing "vars" message for every node
// from its current incoming tensor (spec.md §4.3). Always combines by
// product (sum in log domain), independent of any peer factor's semiring.
func (g *VariableGroup) ComputeMessages() (map[string]*tensor.Dense3, error) {
	msgs := g.chunk.Msgs()
	d, s, n := msgs.Dims()

	out, err := tensor.NewDense3(d, s, n)
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return map[string]*tensor.Dense3{"vars": out}, nil
	}

	if d == 2 {
		// Fast path: outgoing[0] = incoming[1], outgoing[1] = incoming[0].
		// Matches the upstream shortcut, which bypasses log/exp and, like
		// the upstream, does not fold in unary evidence at this degree.
		for nIdx := 0; nIdx < n; nIdx++ {
			col0, err := msgs.ColCompute(0, nIdx)
			if err != nil {
				return nil, err
			}
			col1, err := msgs.ColCompute(1, nIdx)
			if err != nil {
				return nil, err
			}
			if err := out.SetColCompute(0, nIdx, col1); err != nil {
				return nil, err
			}
			if err := out.SetColCompute(1, nIdx, col0); err != nil {
				return nil, err
			}
		}
		if err := out.Clamp(core.MsgMin, core.MsgMax); err != nil {
			return nil, err
		}
		return map[string]*tensor.Dense3{"vars": out}, nil
	}

	logCols := make([][]float64, d)
	for nIdx := 0; nIdx < n; nIdx++ {
		allLogSum := make([]float64, s)
		for dIdx := 0; dIdx < d; dIdx++ {
			col, err := msgs.ColCompute(dIdx, nIdx)
			if err != nil {
				return nil, err
			}
			logCol := make([]float64, s)
			for sIdx, v := range col {
				logCol[sIdx] = math.Log(v)
				allLogSum[sIdx] += logCol[sIdx]
			}
			logCols[dIdx] = logCol
		}
		if unary := g.unaryFor(nIdx); unary != nil {
			for sIdx := range allLogSum {
				allLogSum[sIdx] += unary[sIdx]
			}
		}

		for dIdx := 0; dIdx < d; dIdx++ {
			fMsg := make([]float64, s)
			for sIdx := range fMsg {
				fMsg[sIdx] = allLogSum[sIdx] - logCols[dIdx][sIdx]
			}
			denom := floats.LogSumExp(fMsg)
			for sIdx := range fMsg {
				fMsg[sIdx] = math.Exp(fMsg[sIdx] - denom)
			}
			if err := out.SetColCompute(dIdx, nIdx, fMsg); err != nil {
				return nil, err
			}
		}
	}

	if err := out.Clamp(core.MsgMin, core.MsgMax); err != nil {
		return nil, err
	}
	return map[string]*tensor.Dense3{"vars": out}, nil
}

// GetBeliefs returns the current normalized beliefs as N rows of S
// entries: bel[n] is the belief distribution over states for node n.
func (g *VariableGroup) GetBeliefs() ([][]float64, error) {
	msgs := g.chunk.Msgs()
	d, s, n := msgs.Dims()

	bel := make([][]float64, n)
	for nIdx := 0; nIdx < n; nIdx++ {
		logBel := make([]float64, s)
		for dIdx := 0; dIdx < d; dIdx++ {
			col, err := msgs.ColCompute(dIdx, nIdx)
			if err != nil {
				return nil, err
			}
			for sIdx, v := range col {
				logBel[sIdx] += math.Log(v)
			}
		}
		if unary := g.unaryFor(nIdx); unary != nil {
			for sIdx := range logBel {
				logBel[sIdx] += unary[sIdx]
			}
		}
		denom := floats.LogSumExp(logBel)
		row := make([]float64, s)
		for sIdx := range row {
			row[sIdx] = math.Exp(logBel[sIdx] - denom)
		}
		bel[nIdx] = row
	}
	return bel, nil
}
