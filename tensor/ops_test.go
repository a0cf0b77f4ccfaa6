package tensor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbp/lgbp/tensor"
)

func TestClamp_NoChangeWhenInRange(t *testing.T) {
	tn, err := tensor.NewDense3(1, 2, 1)
	require.NoError(t, err)
	require.NoError(t, tn.Set(0, 0, 0, 0.3))
	require.NoError(t, tn.Set(0, 1, 0, 0.7))

	require.NoError(t, tn.Clamp(1e-8, 1-1e-8))

	v0, _ := tn.At(0, 0, 0)
	v1, _ := tn.At(0, 1, 0)
	assert.InDelta(t, 0.3, v0, 1e-12)
	assert.InDelta(t, 0.7, v1, 1e-12)
}

func TestClamp_RenormalizesWhenClipped(t *testing.T) {
	tn, err := tensor.NewDense3(1, 2, 1)
	require.NoError(t, err)
	require.NoError(t, tn.Set(0, 0, 0, 2.0))
	require.NoError(t, tn.Set(0, 1, 0, -1.0))

	require.NoError(t, tn.Clamp(1e-8, 1-1e-8))

	v0, _ := tn.At(0, 0, 0)
	v1, _ := tn.At(0, 1, 0)
	assert.InDelta(t, 1.0, v0+v1, 1e-9)
}

func TestNormalizeS(t *testing.T) {
	tn, err := tensor.NewDense3(1, 2, 1)
	require.NoError(t, err)
	require.NoError(t, tn.Set(0, 0, 0, 2.0))
	require.NoError(t, tn.Set(0, 1, 0, 6.0))

	tn.NormalizeS()

	v0, _ := tn.At(0, 0, 0)
	v1, _ := tn.At(0, 1, 0)
	assert.InDelta(t, 0.25, v0, 1e-12)
	assert.InDelta(t, 0.75, v1, 1e-12)
}

func TestLogSumExpNormalizeS(t *testing.T) {
	tn, err := tensor.NewDense3(1, 2, 1)
	require.NoError(t, err)
	require.NoError(t, tn.Set(0, 0, 0, math.Log(0.2)))
	require.NoError(t, tn.Set(0, 1, 0, math.Log(0.8)))

	tn.LogSumExpNormalizeS()

	v0, _ := tn.At(0, 0, 0)
	v1, _ := tn.At(0, 1, 0)
	assert.InDelta(t, 0.2, v0, 1e-9)
	assert.InDelta(t, 0.8, v1, 1e-9)
}
