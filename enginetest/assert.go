package enginetest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomip/gomip/model"
)

// Assert is a helper to test models against an in-memory engine.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for convenience.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		assert := &Assert{t, require.New(t)}
		fn(assert)
	})
}

// Log logs using the test instance logger.
func (assert *Assert) Log(v ...interface{}) {
	assert.t.Log(v...)
}

// ModelSynced fails the test unless both collections are index-aligned with
// the engine: lengths equal the engine counts and the i-th handle reports
// index i.
func (assert *Assert) ModelSynced(m *model.Model, e *Engine) {
	assert.Equal(e.NumCols(), m.Vars().Len(), "variable count out of sync with engine")
	assert.Equal(e.NumRows(), m.Constrs().Len(), "constraint count out of sync with engine")
	for i := 0; i < m.Vars().Len(); i++ {
		v, err := m.Vars().At(i)
		assert.NoError(err)
		assert.Equal(i, v.Index(), "variable handle index out of sync")
	}
	for i := 0; i < m.Constrs().Len(); i++ {
		c, err := m.Constrs().At(i)
		assert.NoError(err)
		assert.Equal(i, c.Index(), "constraint handle index out of sync")
	}
}
