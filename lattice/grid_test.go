package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbp/lgbp/engine"
	"github.com/lgbp/lgbp/lattice"
	"github.com/lgbp/lgbp/variable"
)

func TestNewGrid_BadDims(t *testing.T) {
	_, err := lattice.NewGrid(0, 3, lattice.Conn4)
	assert.ErrorIs(t, err, lattice.ErrEmptyGrid)
}

func TestGrid_IndexCoordinateRoundTrip(t *testing.T) {
	g, err := lattice.NewGrid(4, 3, lattice.Conn4)
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			idx := g.Index(x, y)
			gx, gy := g.Coordinate(idx)
			assert.Equal(t, x, gx)
			assert.Equal(t, y, gy)
		}
	}
}

func TestWireGrid_2x1(t *testing.T) {
	vg, err := variable.NewVariableGroup("px", 2)
	require.NoError(t, err)
	ids, err := vg.CreateNodes(2)
	require.NoError(t, err)
	require.NoError(t, vg.AddUnaries([]int{ids[0]}, [][]float64{{0.6, 0.4}}))
	require.NoError(t, vg.AddUnaries([]int{ids[1]}, [][]float64{{0.4, 0.6}}))

	g, err := lattice.NewGrid(2, 1, lattice.Conn4)
	require.NoError(t, err)

	eng := engine.New()
	require.NoError(t, eng.AddNodesToSchedule(vg))

	pottsGroup, err := lattice.WireGrid(eng, vg, ids, g, 0.1, "max")
	require.NoError(t, err)
	require.NotNil(t, pottsGroup)

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

func TestWireGrid_NodeCountMismatch(t *testing.T) {
	vg, err := variable.NewVariableGroup("px", 2)
	require.NoError(t, err)
	ids, err := vg.CreateNodes(2)
	require.NoError(t, err)

	g, err := lattice.NewGrid(3, 3, lattice.Conn4)
	require.NoError(t, err)

	eng := engine.New()
	_, err = lattice.WireGrid(eng, vg, ids, g, 0.1, "sum")
	assert.ErrorIs(t, err, lattice.ErrNodeCountMismatch)
}
