package factor

import (
	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
)

// NoisyOr is the disjunctive factor family (spec.md §4.4.2): many binary
// inputs independently fire a binary output with probability prob_success,
// plus an independent leak probability leak_prob. Its message update has
// no semiring branch: the reductions involved are always plain products,
// so bp_algo is accepted and validated (for a consistent construction
// API across families) but does not change the math, matching the
// upstream family this is adapted from.
type NoisyOr struct {
	name        string
	leakProb    float64
	probSuccess float64
	q           float64

	inputChunk  *core.MessageChunk
	outputChunk *core.MessageChunk
}

// NewNoisyOr builds a NoisyOr factor family.
func NewNoisyOr(name string, leakProb, probSuccess float64, bpAlgo string) (*NoisyOr, error) {
	if err := validateNoisyOrParams(leakProb, probSuccess); err != nil {
		return nil, err
	}
	if _, err := core.ParseSemiring(bpAlgo); err != nil {
		return nil, err
	}

	no := &NoisyOr{
		name:        name,
		leakProb:    leakProb,
		probSuccess: probSuccess,
		q:           1 - probSuccess,
	}
	no.inputChunk = core.NewMessageChunk(name+"_input", 2)
	no.inputChunk.SetPadMsgVal([]float64{1, 0})
	no.outputChunk = core.NewMessageChunk(name+"_output", 2)
	no.outputChunk.SetPadMsgVal([]float64{0.5, 0.5})
	return no, nil
}

// NewLeakyOr builds a NoisyOr with prob_success fixed to 1 (spec.md
// §4.4.2 "LeakyOr as prob_success = 1").
func NewLeakyOr(name string, leakProb float64) (*NoisyOr, error) {
	return NewNoisyOr(name, leakProb, 1.0, "sum")
}

// Name returns the factor group's name.
func (no *NoisyOr) Name() string { return no.name }

// CreateNodes extends the group by k factors, returning dense ids
// shared by both the input and output roles.
func (no *NoisyOr) CreateNodes(k int) ([]int, error) {
	if _, err := no.inputChunk.CreateEntries(k); err != nil {
		return nil, err
	}
	return no.outputChunk.CreateEntries(k)
}

// RoleChunk returns the MessageChunk backing "input" or "output".
func (no *NoisyOr) RoleChunk(role string) (*core.MessageChunk, error) {
	switch role {
	case "input":
		return no.inputChunk, nil
	case "output":
		return no.outputChunk, nil
	default:
		return nil, ErrBadEdgeRole
	}
}

// Finalize validates the output role's fixed degree (exactly 1 per
// factor) and allocates both chunks.
func (no *NoisyOr) Finalize() error {
	if err := checkDegreeExactly(no.outputChunk, 1, ErrNotDegreeOne); err != nil {
		return err
	}
	if err := no.inputChunk.Finalize(); err != nil {
		return err
	}
	return no.outputChunk.Finalize()
}

// ComputeMessages implements the noisy-OR message update (spec.md §4.4.2).
func (no *NoisyOr) ComputeMessages() (map[string]*tensor.Dense3, error) {
	inMsgs := no.inputChunk.Msgs()
	outMsgs := no.outputChunk.Msgs()
	dIn, _, n := inMsgs.Dims()

	inOut, err := tensor.NewDense3(dIn, 2, n)
	if err != nil {
		return nil, err
	}
	outOut, err := tensor.NewDense3(1, 2, n)
	if err != nil {
		return nil, err
	}

	for ni := 0; ni < n; ni++ {
		w := make([]float64, dIn)
		p := 1.0
		for d := 0; d < dIn; d++ {
			off, err := inMsgs.At(d, 0, ni)
			if err != nil {
				return nil, err
			}
			on, err := inMsgs.At(d, 1, ni)
			if err != nil {
				return nil, err
			}
			w[d] = off + no.q*on
			p *= w[d]
		}

		m0 := (1 - no.leakProb) * p
		m1 := 1 - m0
		if err := outOut.SetColCompute(0, ni, []float64{m0, m1}); err != nil {
			return nil, err
		}

		outOff, err := outMsgs.At(0, 0, ni)
		if err != nil {
			return nil, err
		}
		outOn, err := outMsgs.At(0, 1, ni)
		if err != nil {
			return nil, err
		}
		delta := outOff - outOn

		for d := 0; d < dIn; d++ {
			r := p / w[d]
			tt := (1 - no.leakProb) * r * delta
			m := make([]float64, 2)
			m[0] = outOn + tt
			m[1] = outOn + no.q*tt
			if err := inOut.SetColCompute(d, ni, normalizeRow(m)); err != nil {
				return nil, err
			}
		}
	}

	if err := inOut.Clamp(core.MsgMin, core.MsgMax); err != nil {
		return nil, err
	}
	if err := outOut.Clamp(core.MsgMin, core.MsgMax); err != nil {
		return nil, err
	}
	return map[string]*tensor.Dense3{"input": inOut, "output": outOut}, nil
}
