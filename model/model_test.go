package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomip/gomip/enginetest"
	"github.com/gomip/gomip/model"
)

var errEngineDown = errors.New("engine down")

// failingEngine wraps the in-memory engine and fails selected operations,
// so tests can observe that a failed engine call leaves collections and
// handles untouched.
type failingEngine struct {
	*enginetest.Engine
	failAddVar        bool
	failAddConstr     bool
	failRemoveVars    bool
	failRemoveConstrs bool
}

func (f *failingEngine) AddVar(obj, lb, ub float64, vt model.VarType, col *model.Column, name string) error {
	if f.failAddVar {
		return errEngineDown
	}
	return f.Engine.AddVar(obj, lb, ub, vt, col, name)
}

func (f *failingEngine) AddConstr(expr *model.LinExpr, name string) error {
	if f.failAddConstr {
		return errEngineDown
	}
	return f.Engine.AddConstr(expr, name)
}

func (f *failingEngine) RemoveVars(positions []int) error {
	if f.failRemoveVars {
		return errEngineDown
	}
	return f.Engine.RemoveVars(positions)
}

func (f *failingEngine) RemoveConstrs(positions []int) error {
	if f.failRemoveConstrs {
		return errEngineDown
	}
	return f.Engine.RemoveConstrs(positions)
}

func addVars(t *testing.T, m *model.Model, names ...string) []*model.Var {
	t.Helper()
	out := make([]*model.Var, len(names))
	for i, name := range names {
		v, err := m.AddVar(model.WithName(name))
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func addConstrs(t *testing.T, m *model.Model, on *model.Var, names ...string) []*model.Constr {
	t.Helper()
	out := make([]*model.Constr, len(names))
	for i, name := range names {
		c, err := m.AddConstr(model.NewLinExpr(model.SenseLE, 1).AddTerm(on, 1), name)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestNewModelNilEngine(t *testing.T) {
	require.Panics(t, func() { model.NewModel(nil) })
}

func TestModelDelegation(t *testing.T) {
	assert := require.New(t)

	e := enginetest.New()
	m := model.NewModel(e)

	x, err := m.AddVar(model.WithName("x"))
	assert.NoError(err)
	c, err := m.AddConstr(model.NewLinExpr(model.SenseEQ, -1).AddTerm(x, 1), "fix")
	assert.NoError(err)

	got, err := m.Vars().At(0)
	assert.NoError(err)
	assert.Same(x, got)
	gotC, err := m.Constrs().At(0)
	assert.NoError(err)
	assert.Same(c, gotC)

	enginetest.NewAssert(t).ModelSynced(m, e)
}

func TestVarByName(t *testing.T) {
	assert := require.New(t)

	e := enginetest.New()
	m := model.NewModel(e)
	xs := addVars(t, m, "x", "y")

	// cached range resolves to the collection's own handle
	v, err := m.VarByName("y")
	assert.NoError(err)
	assert.Same(xs[1], v)
	again, err := m.VarByName("y")
	assert.NoError(err)
	assert.Same(v, again)

	_, err = m.VarByName("z")
	assert.ErrorContains(err, `no variable named "z"`)
}

func TestVarByNameUncached(t *testing.T) {
	assert := require.New(t)

	e := enginetest.New()
	m := model.NewModel(e)
	addVars(t, m, "x")

	// engine knows a column the collection never cached
	e.InjectCols("ghost")

	v, err := m.VarByName("ghost")
	assert.NoError(err)
	assert.Equal(1, v.Index())
	assert.Equal(1, m.Vars().Len())

	again, err := m.VarByName("ghost")
	assert.NoError(err)
	assert.NotSame(v, again)
}

func TestConstrByName(t *testing.T) {
	assert := require.New(t)

	e := enginetest.New()
	m := model.NewModel(e)
	xs := addVars(t, m, "x")
	cs := addConstrs(t, m, xs[0], "c0", "c1")

	c, err := m.ConstrByName("c1")
	assert.NoError(err)
	assert.Same(cs[1], c)

	_, err = m.ConstrByName("missing")
	assert.ErrorContains(err, `no constraint named "missing"`)

	e.InjectRows("extra")
	c, err = m.ConstrByName("extra")
	assert.NoError(err)
	assert.Equal(2, c.Index())
	assert.Equal(2, m.Constrs().Len())
}

func TestResync(t *testing.T) {
	assert := enginetest.NewAssert(t)

	assert.Run(func(assert *enginetest.Assert) {
		e := enginetest.New()
		m := model.NewModel(e)
		b, err := m.AddVar(model.WithName("b"))
		assert.NoError(err)

		e.InjectCols("c", "d")
		assert.Equal(1, m.Vars().Len())

		m.Resync()
		assert.Equal(3, m.Vars().Len())
		assert.ModelSynced(m, e)

		// handles issued before Resync are orphaned, not detached
		assert.Equal(0, b.Index())
		fresh, err := m.Vars().At(0)
		assert.NoError(err)
		assert.NotSame(b, fresh)
	}, "vars")

	assert.Run(func(assert *enginetest.Assert) {
		e := enginetest.New()
		m := model.NewModel(e)
		x, err := m.AddVar(model.WithName("x"))
		assert.NoError(err)
		old, err := m.AddConstr(model.NewLinExpr(model.SenseLE, 1).AddTerm(x, 1), "c0")
		assert.NoError(err)

		e.InjectRows("c1")
		m.Resync()
		assert.Equal(2, m.Constrs().Len())
		assert.ModelSynced(m, e)

		assert.Equal(0, old.Index())
		fresh, err := m.Constrs().At(0)
		assert.NoError(err)
		assert.NotSame(old, fresh)
	}, "constrs")
}
