package model

import (
	"fmt"

	"github.com/gomip/gomip/logger"
)

// Model owns the caching collections for one engine instance and keeps them
// index-aligned with the engine's columns and rows. All methods assume a
// single goroutine drives the model; the engine may still grow underneath
// it during solver callbacks, which is what the view types are for.
type Model struct {
	engine  Engine
	vars    VarList
	constrs ConstrList
}

// NewModel wraps an engine in a fresh model with empty collections.
func NewModel(e Engine) *Model {
	if e == nil {
		panic("model: nil engine")
	}
	m := &Model{engine: e}
	m.vars.model = m
	m.constrs.model = m
	return m
}

// Engine returns the wrapped engine.
func (m *Model) Engine() Engine {
	return m.engine
}

// Vars returns the model's variable collection.
func (m *Model) Vars() *VarList {
	return &m.vars
}

// Constrs returns the model's constraint collection.
func (m *Model) Constrs() *ConstrList {
	return &m.constrs
}

// VarView returns an unscoped view over the engine's columns, resolved
// lazily on every access. Use it inside callbacks where the caching
// collection may lag behind the engine.
func (m *Model) VarView() VarView {
	return VarView{model: m, start: wholeRange, end: wholeRange}
}

// ConstrView returns an unscoped view over the engine's rows.
func (m *Model) ConstrView() ConstrView {
	return ConstrView{model: m, start: wholeRange, end: wholeRange}
}

// AddVar creates a new variable; shorthand for Vars().Add.
func (m *Model) AddVar(opts ...VarOption) (*Var, error) {
	return m.vars.Add(opts...)
}

// AddConstr creates a new constraint; shorthand for Constrs().Add.
func (m *Model) AddConstr(expr *LinExpr, name string) (*Constr, error) {
	return m.constrs.Add(expr, name)
}

// VarByName resolves a variable through the engine's name registry. When
// the resolved index falls inside the cached collection the cached handle
// is returned, so repeated lookups alias the same handle.
func (m *Model) VarByName(name string) (*Var, error) {
	i, ok := m.engine.VarIndex(name)
	if !ok {
		return nil, fmt.Errorf("model: no variable named %q", name)
	}
	if i < len(m.vars.vars) {
		return m.vars.vars[i], nil
	}
	// known to the engine but not cached (created inside a callback)
	return &Var{model: m, idx: i}, nil
}

// ConstrByName resolves a constraint through the engine's name registry.
func (m *Model) ConstrByName(name string) (*Constr, error) {
	i, ok := m.engine.ConstrIndex(name)
	if !ok {
		return nil, fmt.Errorf("model: no constraint named %q", name)
	}
	if i < len(m.constrs.constrs) {
		return m.constrs.constrs[i], nil
	}
	return &Constr{model: m, idx: i}, nil
}

// Resync rebuilds both collections from the engine's authoritative counts.
// Destructive: every handle issued before the call is orphaned, its index
// no longer tied to the collection. Call after the engine changed outside
// the model, e.g. after loading a problem or returning from a callback that
// used the views.
func (m *Model) Resync() {
	nc, nr := m.engine.NumCols(), m.engine.NumRows()
	m.vars.Rebuild(nc)
	m.constrs.Rebuild(nr)
	log := logger.Logger()
	log.Debug().Int("vars", nc).Int("constrs", nr).Msg("model resynchronized from engine")
}
