package model

import (
	"fmt"

	"github.com/gomip/gomip/profile"
)

// wholeRange marks a view that covers the engine's whole current range.
// Bounds are resolved lazily on every access so the view tracks engine
// growth, which is what callback code needs.
const wholeRange = -1

// VarView is a stateless window onto the engine's columns. It holds no
// handle cache, so it stays valid while the engine mutates underneath it,
// typically inside solver callbacks where the model's caching collections
// are out of sync. Handles it returns are fresh on every access.
//
// The zero bound pair (wholeRange, wholeRange) denotes the whole current
// column range; Slice produces fixed sub-windows.
type VarView struct {
	model *Model
	start int
	end   int
}

func (vv VarView) bounds() (int, int) {
	if vv.start == wholeRange {
		return 0, vv.model.engine.NumCols()
	}
	return vv.start, vv.end
}

// Add creates a variable directly against the engine and returns a fresh
// handle indexed by the engine's live column count. The model's caching
// collection is not touched; call Model.Resync once the callback returns.
func (vv VarView) Add(opts ...VarOption) (*Var, error) {
	idx := vv.model.engine.NumCols()
	cfg := newVarConfig(idx, opts)
	if err := checkColumn(vv.model, cfg.col); err != nil {
		return nil, err
	}
	if err := vv.model.engine.AddVar(cfg.obj, cfg.lb, cfg.ub, cfg.vt, cfg.col, cfg.name); err != nil {
		return nil, fmt.Errorf("engine add var: %w", err)
	}
	profile.RecordVariable()
	return &Var{model: vv.model, idx: idx}, nil
}

// At returns a fresh handle for the i-th variable of the window. Negative
// keys resolve as end-i before the range check.
func (vv VarView) At(i int) (*Var, error) {
	start, end := vv.bounds()
	if i < 0 {
		i = end - i
	}
	if i >= end {
		return nil, fmt.Errorf("%w: variable index %d, range end %d", ErrOutOfRange, i, end)
	}
	return &Var{model: vv.model, idx: i + start}, nil
}

// ByName resolves a variable by engine name; see Model.VarByName.
func (vv VarView) ByName(name string) (*Var, error) {
	return vv.model.VarByName(name)
}

// Get looks a variable up by integer index or by name.
func (vv VarView) Get(key any) (*Var, error) {
	switch k := key.(type) {
	case int:
		return vv.At(k)
	case string:
		return vv.ByName(k)
	default:
		return nil, fmt.Errorf("%w: unrecognized key type %T", ErrInvalidKey, key)
	}
}

// Slice returns a fixed sub-window [start, end) of the engine's columns.
// Constant time: no handles are materialized.
func (vv VarView) Slice(start, end int) VarView {
	return VarView{model: vv.model, start: start, end: end}
}

// Len returns the window width. For a whole-range view this is the engine's
// live column count, re-read on every call.
func (vv VarView) Len() int {
	start, end := vv.bounds()
	return end - start
}

// ConstrView is the constraint counterpart of VarView: a stateless window
// onto the engine's rows, safe to use while the engine mutates.
type ConstrView struct {
	model *Model
	start int
	end   int
}

func (cv ConstrView) bounds() (int, int) {
	if cv.start == wholeRange {
		return 0, cv.model.engine.NumRows()
	}
	return cv.start, cv.end
}

// Add creates a constraint directly against the engine and returns a fresh
// handle indexed by the engine's live row count. An empty name synthesizes
// constr(<index>). The model's caching collection is not touched.
func (cv ConstrView) Add(expr *LinExpr, name string) (*Constr, error) {
	if err := checkExpr(cv.model, expr); err != nil {
		return nil, err
	}
	idx := cv.model.engine.NumRows()
	if name == "" {
		name = fmt.Sprintf("constr(%d)", idx)
	}
	if err := cv.model.engine.AddConstr(expr, name); err != nil {
		return nil, fmt.Errorf("engine add constr: %w", err)
	}
	profile.RecordConstraint()
	return &Constr{model: cv.model, idx: idx}, nil
}

// At returns a fresh handle for the i-th constraint of the window. Negative
// keys resolve as end-i before the range check.
func (cv ConstrView) At(i int) (*Constr, error) {
	start, end := cv.bounds()
	if i < 0 {
		i = end - i
	}
	if i >= end {
		return nil, fmt.Errorf("%w: constraint index %d, range end %d", ErrOutOfRange, i, end)
	}
	return &Constr{model: cv.model, idx: i + start}, nil
}

// ByName resolves a constraint by engine name; see Model.ConstrByName.
func (cv ConstrView) ByName(name string) (*Constr, error) {
	return cv.model.ConstrByName(name)
}

// Get looks a constraint up by integer index or by name.
func (cv ConstrView) Get(key any) (*Constr, error) {
	switch k := key.(type) {
	case int:
		return cv.At(k)
	case string:
		return cv.ByName(k)
	default:
		return nil, fmt.Errorf("%w: unrecognized key type %T", ErrInvalidKey, key)
	}
}

// Slice returns a fixed sub-window [start, end) of the engine's rows.
func (cv ConstrView) Slice(start, end int) ConstrView {
	return ConstrView{model: cv.model, start: start, end: end}
}

// Len returns the window width. For a whole-range view this is the engine's
// live row count, re-read on every call.
func (cv ConstrView) Len() int {
	start, end := cv.bounds()
	return end - start
}
