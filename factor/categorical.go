package factor

import (
	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
)

// Categorical is the conditional p(out | in) factor family (spec.md
// §4.4.1): one input edge per factor (cardinality n_in), and n_out binary
// output edges each independently gated by that input's state.
type Categorical struct {
	name     string
	semiring core.Semiring
	probs    [][]float64 // probs[d][s] = p(out_d = 1 | in = s)
	nOut     int
	sIn      int

	inputChunk  *core.MessageChunk
	outputChunk *core.MessageChunk
}

// NewCategorical builds a Categorical factor family. probs is
// [n_in][n_out] (row = input state, matching the external p(out | in)
// convention of spec.md §3/§6); it is transposed internally to
// [n_out][n_in] to match ComputeMessages' d/s indexing, the same
// transpose original_source/nodesLib/cat_nodes.py applies to its own
// constructor argument. bpAlgo selects the reduction semiring ("sum" or
// "max").
func NewCategorical(name string, probs [][]float64, bpAlgo string) (*Categorical, error) {
	if len(probs) == 0 {
		return nil, ErrEmptyProbs
	}
	sIn := len(probs)
	nOut := len(probs[0])
	for _, row := range probs {
		if len(row) != nOut {
			return nil, ErrRaggedProbs
		}
		for _, v := range row {
			if v < 0 || v > 1 {
				return nil, ErrProbRange
			}
		}
	}
	sr, err := core.ParseSemiring(bpAlgo)
	if err != nil {
		return nil, err
	}

	transposed := make([][]float64, nOut)
	for d := 0; d < nOut; d++ {
		transposed[d] = make([]float64, sIn)
		for s := 0; s < sIn; s++ {
			transposed[d][s] = probs[s][d]
		}
	}

	c := &Categorical{
		name:     name,
		semiring: sr,
		probs:    transposed,
		nOut:     nOut,
		sIn:      sIn,
	}
	c.inputChunk = core.NewMessageChunk(name+"_input", sIn)
	c.outputChunk = core.NewMessageChunk(name+"_output", 2)
	c.outputChunk.SetPadMsgVal([]float64{0.5, 0.5})
	return c, nil
}

// Name returns the factor group's name.
func (c *Categorical) Name() string { return c.name }

// CreateNodes extends the group by k factors, returning dense ids
// shared by both the input and output roles.
func (c *Categorical) CreateNodes(k int) ([]int, error) {
	if _, err := c.inputChunk.CreateEntries(k); err != nil {
		return nil, err
	}
	return c.outputChunk.CreateEntries(k)
}

// RoleChunk returns the MessageChunk backing "input" or "output".
func (c *Categorical) RoleChunk(role string) (*core.MessageChunk, error) {
	switch role {
	case "input":
		return c.inputChunk, nil
	case "output":
		return c.outputChunk, nil
	default:
		return nil, ErrBadEdgeRole
	}
}

// Finalize validates the realized topology (exactly one input edge and
// exactly n_out output edges per factor) and allocates both chunks.
func (c *Categorical) Finalize() error {
	if err := checkDegreeExactly(c.inputChunk, 1, ErrNotDegreeOne); err != nil {
		return err
	}
	if err := checkDegreeExactly(c.outputChunk, c.nOut, ErrNotDegreeOne); err != nil {
		return err
	}
	if err := c.inputChunk.Finalize(); err != nil {
		return err
	}
	return c.outputChunk.Finalize()
}

// ComputeMessages implements the categorical message update (spec.md
// §4.4.1), including the leave-one-out fix for the output-message
// reduction flagged as an open question there: the reduce over the
// other output slots when deriving a slot's own off-message is a
// leave-one-out reduce under both semirings, via core.Semiring.ReduceExcludingEach.
func (c *Categorical) ComputeMessages() (map[string]*tensor.Dense3, error) {
	inMsgs := c.inputChunk.Msgs()
	outMsgs := c.outputChunk.Msgs()
	_, _, n := c.inputChunk.Msgs().Dims()

	inOut, err := tensor.NewDense3(1, c.sIn, n)
	if err != nil {
		return nil, err
	}
	outOut, err := tensor.NewDense3(c.nOut, 2, n)
	if err != nil {
		return nil, err
	}

	for ni := 0; ni < n; ni++ {
		muIn, err := inMsgs.ColCompute(0, ni)
		if err != nil {
			return nil, err
		}

		r := make([]float64, c.nOut)
		mOn := make([]float64, c.nOut)
		for d := 0; d < c.nOut; d++ {
			off, err := outMsgs.At(d, 0, ni)
			if err != nil {
				return nil, err
			}
			on, err := outMsgs.At(d, 1, ni)
			if err != nil {
				return nil, err
			}
			r[d] = on / off

			w := make([]float64, c.sIn)
			for s := 0; s < c.sIn; s++ {
				w[s] = c.probs[d][s] * muIn[s]
			}
			mOn[d] = c.semiring.ReduceAll(w)
		}

		toInput := make([]float64, c.sIn)
		for s := 0; s < c.sIn; s++ {
			terms := make([]float64, c.nOut)
			for d := 0; d < c.nOut; d++ {
				terms[d] = c.probs[d][s] * r[d]
			}
			toInput[s] = c.semiring.ReduceAll(terms)
		}
		if err := inOut.SetColCompute(0, ni, normalizeRow(toInput)); err != nil {
			return nil, err
		}

		mOffPre := make([]float64, c.nOut)
		for d := 0; d < c.nOut; d++ {
			mOffPre[d] = r[d] * mOn[d]
		}
		mOff := c.semiring.ReduceExcludingEach(mOffPre)

		for d := 0; d < c.nOut; d++ {
			off, on := normalizePair(mOff[d], mOn[d])
			if err := outOut.SetColCompute(d, ni, []float64{off, on}); err != nil {
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
