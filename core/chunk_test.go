package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbp/lgbp/core"
)

func TestMessageChunk_CreateEntriesAndFinalize(t *testing.T) {
	c := core.NewMessageChunk("x", 3)
	ids, err := c.CreateEntries(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids)

	slot, err := c.NextSlot(0)
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
	slot, err = c.NextSlot(0)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	c.SetRand(rand.New(rand.NewSource(7)))
	require.NoError(t, c.Finalize())

	deg0, err := c.Degree(0)
	require.NoError(t, err)
	assert.Equal(t, 2, deg0)
	assert.Equal(t, 2, c.MaxDegree())

	msgs := c.Msgs()
	d, s, n := msgs.Dims()
	assert.Equal(t, 2, d)
	assert.Equal(t, 3, s)
	assert.Equal(t, 2, n)
}

func TestMessageChunk_PadFillUsesUniformByDefault(t *testing.T) {
	c := core.NewMessageChunk("y", 2)
	_, err := c.CreateEntries(2)
	require.NoError(t, err)

	_, err = c.NextSlot(0)
	require.NoError(t, err)
	_, err = c.NextSlot(0)
	require.NoError(t, err)
	_, err = c.NextSlot(1)
	require.NoError(t, err)

	require.NoError(t, c.Finalize())

	msgs := c.Msgs()
	v, err := msgs.At(1, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestMessageChunk_SetNumStatesConflict(t *testing.T) {
	c := core.NewMessageChunk("z", 0)
	require.NoError(t, c.SetNumStates(4))
	err := c.SetNumStates(5)
	assert.ErrorIs(t, err, core.ErrNumStatesConflict)
}

func TestMessageChunk_FinalizeEmptyErrors(t *testing.T) {
	c := core.NewMessageChunk("e", 2)
	err := c.Finalize()
	assert.ErrorIs(t, err, core.ErrEmptyChunk)
}

func TestMessageChunk_FinalizeTwiceErrors(t *testing.T) {
	c := core.NewMessageChunk("w", 2)
	_, err := c.CreateEntries(1)
	require.NoError(t, err)
	require.NoError(t, c.Finalize())
	err = c.Finalize()
	assert.ErrorIs(t, err, core.ErrAlreadyFinalized)
}

func TestMessageChunk_ZeroDegreeNode(t *testing.T) {
	c := core.NewMessageChunk("unary-only", 3)
	_, err := c.CreateEntries(1)
	require.NoError(t, err)
	require.NoError(t, c.Finalize())

	assert.Equal(t, 0, c.MaxDegree())
	d, _, _ := c.Msgs().Dims()
	assert.Equal(t, 0, d)
}

func TestMessageChunk_Clamp(t *testing.T) {
	c := core.NewMessageChunk("clampee", 2)
	_, err := c.CreateEntries(1)
	require.NoError(t, err)
	_, err = c.NextSlot(0)
	require.NoError(t, err)
	require.NoError(t, c.Finalize())

	msg, err := c.Msgs().Clone(), error(nil)
	_ = err
	require.NoError(t, msg.Set(0, 0, 0, 5.0))
	require.NoError(t, msg.Set(0, 1, 0, -3.0))

	require.NoError(t, c.Clamp(msg))

	v0, _ := msg.At(0, 0, 0)
	v1, _ := msg.At(0, 1, 0)
	assert.InDelta(t, 1.0, v0+v1, 1e-9)
}
