package factor

import (
	"math"

	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
)

// Potts is the pairwise same-state-preference factor family (spec.md
// §4.4.3): every factor has exactly two edges on a single role,
// "default", and both endpoints share the same state cardinality.
type Potts struct {
	name     string
	semiring core.Semiring
	alpha    float64

	numStates int
	chunk     *core.MessageChunk
}

// NewPotts builds a Potts factor family. alpha must be > 0. numStates
// is the shared cardinality of both endpoints; bpAlgo selects sum- or
// max-product.
func NewPotts(name string, numStates int, alpha float64, bpAlgo string) (*Potts, error) {
	if err := validatePottsParams(alpha); err != nil {
		return nil, err
	}
	sr, err := core.ParseSemiring(bpAlgo)
	if err != nil {
		return nil, err
	}
	p := &Potts{
		name:      name,
		semiring:  sr,
		alpha:     alpha,
		numStates: numStates,
		chunk:     core.NewMessageChunk(name+"_default", numStates),
	}
	return p, nil
}

// Name returns the factor group's name.
func (p *Potts) Name() string { return p.name }

// CreateNodes extends the group by k factors, returning dense ids.
func (p *Potts) CreateNodes(k int) ([]int, error) {
	return p.chunk.CreateEntries(k)
}

// RoleChunk returns the MessageChunk backing "default".
func (p *Potts) RoleChunk(role string) (*core.MessageChunk, error) {
	if role != "default" {
		return nil, ErrBadEdgeRole
	}
	return p.chunk, nil
}

// Finalize validates that every factor realized exactly 2 edges and
// allocates the chunk.
func (p *Potts) Finalize() error {
	if err := checkDegreeExactly(p.chunk, 2, ErrNotDegreeTwo); err != nil {
		return err
	}
	return p.chunk.Finalize()
}

// ComputeMessages implements the Potts message update (spec.md §4.4.3).
func (p *Potts) ComputeMessages() (map[string]*tensor.Dense3, error) {
	msgs := p.chunk.Msgs()
	_, s, n := msgs.Dims()

	out, err := tensor.NewDense3(2, s, n)
	if err != nil {
		return nil, err
	}

	for ni := 0; ni < n; ni++ {
		for d := 0; d < 2; d++ {
			r, err := msgs.ColCompute(1-d, ni)
			if err != nil {
				return nil, err
			}

			row := make([]float64, s)
			if p.semiring == core.SumProduct {
				for sIdx := range row {
					row[sIdx] = r[sIdx]*(1-p.alpha) + p.alpha
				}
			} else {
				excl := p.semiring.ReduceExcludingEach(r)
				for sIdx := range row {
					row[sIdx] = math.Max(r[sIdx], p.alpha*excl[sIdx])
				}
			}
			if err := out.SetColCompute(d, ni, normalizeRow(row)); err != nil {
				return nil, err
			}
		}
	}

	if err := out.Clamp(core.MsgMin, core.MsgMax); err != nil {
		return nil, err
	}
	return map[string]*tensor.Dense3{"default": out}, nil
}
