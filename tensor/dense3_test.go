package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbp/lgbp/tensor"
)

func TestNewDense3_BadShape(t *testing.T) {
	_, err := tensor.NewDense3(2, 0, 3)
	assert.ErrorIs(t, err, tensor.ErrBadShape)

	_, err = tensor.NewDense3(2, 3, 0)
	assert.ErrorIs(t, err, tensor.ErrBadShape)

	_, err = tensor.NewDense3(-1, 2, 3)
	assert.ErrorIs(t, err, tensor.ErrBadShape)
}

func TestNewDense3_ZeroDegreeAllowed(t *testing.T) {
	tn, err := tensor.NewDense3(0, 2, 3)
	require.NoError(t, err)
	d, s, n := tn.Dims()
	assert.Equal(t, 0, d)
	assert.Equal(t, 2, s)
	assert.Equal(t, 3, n)
}

func TestDense3_SetAtRoundTrip(t *testing.T) {
	tn, err := tensor.NewDense3(2, 3, 4)
	require.NoError(t, err)

	require.NoError(t, tn.Set(1, 2, 3, 0.5))
	v, err := tn.At(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}

func TestDense3_LayoutRoundTrip(t *testing.T) {
	d, s, n := 2, 3, 4
	tn, err := tensor.NewDense3(d, s, n)
	require.NoError(t, err)

	val := 0.0
	for dd := 0; dd < d; dd++ {
		for ss := 0; ss < s; ss++ {
			for nn := 0; nn < n; nn++ {
				val++
				require.NoError(t, tn.Set(dd, ss, nn, val))
			}
		}
	}

	before := append([]float64(nil), tn.Raw()...)

	tn.ToDistribute()
	assert.Equal(t, tensor.Distribute, tn.Layout())
	tn.ToCompute()
	assert.Equal(t, tensor.Compute, tn.Layout())

	assert.Equal(t, before, tn.Raw())
}

func TestDense3_DistributeRowIsContiguous(t *testing.T) {
	tn, err := tensor.NewDense3(2, 3, 4)
	require.NoError(t, err)
	require.NoError(t, tn.Set(1, 0, 2, 7))
	require.NoError(t, tn.Set(1, 1, 2, 8))
	require.NoError(t, tn.Set(1, 2, 2, 9))

	tn.ToDistribute()
	row := 1*4 + 2 // d*N + n
	got, err := tn.RowDist(row)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 8, 9}, got)
}

func TestDense3_WrongLayoutErrors(t *testing.T) {
	tn, err := tensor.NewDense3(2, 2, 2)
	require.NoError(t, err)
	_, err = tn.AtDist(0, 0)
	assert.ErrorIs(t, err, tensor.ErrLayoutMismatch)

	tn.ToDistribute()
	_, err = tn.At(0, 0, 0)
	assert.ErrorIs(t, err, tensor.ErrLayoutMismatch)
}
