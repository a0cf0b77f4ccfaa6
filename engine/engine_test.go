package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbp/lgbp/engine"
	"github.com/lgbp/lgbp/factor"
	"github.com/lgbp/lgbp/variable"
)

func TestEngine_UnariesOnlyConverges(t *testing.T) {
	vg, err := variable.NewVariableGroup("coin", 2)
	require.NoError(t, err)
	ids, err := vg.CreateNodes(1)
	require.NoError(t, err)
	require.NoError(t, vg.AddUnaries(ids, [][]float64{{0.7, 0.3}}))
	require.NoError(t, vg.AddUnaries(ids, [][]float64{{0.4, 0.6}}))
	require.NoError(t, vg.AddUnaries(ids, [][]float64{{0.2, 0.8}}))

	eng := engine.New()
	require.NoError(t, eng.AddNodesToSchedule(vg))
	require.NoError(t, eng.Finalize())
	require.NoError(t, eng.DoMessagePassing())

	bel, err := vg.GetBeliefs()
	require.NoError(t, err)
	// (0.7*0.4*0.2, 0.3*0.6*0.8) = (0.056, 0.144), normalized.
	assert.InDelta(t, 0.28, bel[0][0], 0.01)
	assert.InDelta(t, 0.72, bel[0][1], 0.01)
}

func TestEngine_PottsMaxProductPrefersSameState(t *testing.T) {
	vg, err := variable.NewVariableGroup("pixels", 2)
	require.NoError(t, err)
	ids, err := vg.CreateNodes(2)
	require.NoError(t, err)
	require.NoError(t, vg.AddUnaries([]int{ids[0]}, [][]float64{{0.6, 0.4}}))
	require.NoError(t, vg.AddUnaries([]int{ids[1]}, [][]float64{{0.4, 0.6}}))

	p, err := factor.NewPotts("pair", 2, 0.1, "max")
	require.NoError(t, err)
	fids, err := p.CreateNodes(1)
	require.NoError(t, err)

	eng := engine.New(engine.WithIters(200))
	require.NoError(t, eng.AddNodesToSchedule(vg))
	require.NoError(t, eng.AddNodesToSchedule(p))

	require.NoError(t, eng.AddEdge(vg, ids[0], p, fids[0], "default"))
	require.NoError(t, eng.AddEdge(vg, ids[1], p, fids[0], "default"))

	require.NoError(t, eng.Finalize())
	require.NoError(t, eng.DoMessagePassing())

	bel, err := vg.GetBeliefs()
	require.NoError(t, err)

	argmax := func(row []float64) int {
		if row[1] > row[0] {
			return 1
		}
		return 0
	}
	assert.Equal(t, argmax(bel[0]), argmax(bel[1]))
}

func TestEngine_FinalizeWithNoGroupsErrors(t *testing.T) {
	eng := engine.New()
	err := eng.Finalize()
	assert.ErrorIs(t, err, engine.ErrNoGroups)
}

func TestEngine_DoubleFinalizeErrors(t *testing.T) {
	vg, err := variable.NewVariableGroup("v", 2)
	require.NoError(t, err)
	_, err = vg.CreateNodes(1)
	require.NoError(t, err)

	eng := engine.New()
	require.NoError(t, eng.AddNodesToSchedule(vg))
	require.NoError(t, eng.Finalize())
	err = eng.Finalize()
	assert.ErrorIs(t, err, engine.ErrAlreadyFinalized)
}
