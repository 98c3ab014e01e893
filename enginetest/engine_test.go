package enginetest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemovePositionContract(t *testing.T) {
	assert := require.New(t)

	e := New()
	e.InjectCols("a", "b", "c", "d")

	assert.Error(e.RemoveVars([]int{2, 1}), "unsorted positions must be rejected")
	assert.Error(e.RemoveVars([]int{1, 1}), "duplicated positions must be rejected")
	assert.Error(e.RemoveVars([]int{4}), "out of range position must be rejected")
	assert.Equal(4, e.NumCols(), "failed removals must leave the engine unchanged")

	assert.NoError(e.RemoveVars([]int{1, 3}))
	cols := e.Cols()
	assert.Len(cols, 2)
	assert.Equal("a", cols[0].Name)
	assert.Equal("c", cols[1].Name)
}

func TestNameLookupFirstMatch(t *testing.T) {
	assert := require.New(t)

	e := New()
	e.InjectCols("x", "dup", "dup")

	i, ok := e.VarIndex("dup")
	assert.True(ok)
	assert.Equal(1, i)

	_, ok = e.VarIndex("missing")
	assert.False(ok)

	e.InjectRows("r0")
	i, ok = e.ConstrIndex("r0")
	assert.True(ok)
	assert.Equal(0, i)
}

func TestCallTraceRecordsEmptyBatches(t *testing.T) {
	assert := require.New(t)

	e := New()
	e.InjectRows("r0", "r1")

	assert.NoError(e.RemoveConstrs(nil))
	assert.Equal(2, e.NumRows())

	calls := e.Calls()
	assert.Len(calls, 1)
	assert.Equal("RemoveConstrs", calls[0].Op)
	assert.Empty(calls[0].Positions)
}
