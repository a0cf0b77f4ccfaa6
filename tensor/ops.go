package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clamp clips every entry of t (Compute layout) to [min, max]. If any
// entry was clipped, every (d, n) column is renormalized to sum to 1
// along the state axis. Mirrors MessageChunk.clamp_messages: a single
// global "was anything clipped" flag gates renormalization of the whole
// tensor, not a per-column conditional.
func (t *Dense3) Clamp(min, max float64) error {
	if t.layout != Compute {
		return denseErrorf("Clamp", ErrLayoutMismatch)
	}
	changed := false
	for i, v := range t.data {
		if v > max {
			t.data[i] = max
			changed = true
		} else if v < min {
			t.data[i] = min
			changed = true
		}
	}
	if changed {
		t.NormalizeS()
	}
	return nil
}

// NormalizeS rescales every (d, n) column of t (Compute layout) so its
// S entries sum to 1.
func (t *Dense3) NormalizeS() {
	col := make([]float64, t.s)
	for d := 0; d < t.d; d++ {
		for n := 0; n < t.n; n++ {
			total := 0.0
			for sIdx := 0; sIdx < t.s; sIdx++ {
				v := t.data[(d*t.s+sIdx)*t.n+n]
				col[sIdx] = v
				total += v
			}
			if total == 0 {
				continue
			}
			for sIdx := 0; sIdx < t.s; sIdx++ {
				t.data[(d*t.s+sIdx)*t.n+n] = col[sIdx] / total
			}
		}
	}
}

// LogSumExpNormalizeS replaces every (d, n) column of t (Compute layout,
// values interpreted as log-domain) with exp(x - logsumexp(x)) along the
// state axis, i.e. a numerically stable softmax-style normalization.
func (t *Dense3) LogSumExpNormalizeS() {
	col := make([]float64, t.s)
	for d := 0; d < t.d; d++ {
		for n := 0; n < t.n; n++ {
			for sIdx := 0; sIdx < t.s; sIdx++ {
				col[sIdx] = t.data[(d*t.s+sIdx)*t.n+n]
			}
			denom := floats.LogSumExp(col)
			for sIdx := 0; sIdx < t.s; sIdx++ {
				t.data[(d*t.s+sIdx)*t.n+n] = math.Exp(col[sIdx] - denom)
			}
		}
	}
}
