package model

import (
	"fmt"

	"github.com/gomip/gomip/internal/debug"
	"github.com/gomip/gomip/internal/utils"
	"github.com/gomip/gomip/logger"
	"github.com/gomip/gomip/profile"
)

// VarList is the caching collection of a model's variables. Insertion order
// is index order: at any quiescent point the i-th handle has index i and
// Len() equals the engine's column count.
type VarList struct {
	model *Model
	vars  []*Var
}

// varConfig collects the attributes of one variable insertion.
type varConfig struct {
	name   string
	lb, ub float64
	obj    float64
	vt     VarType
	col    *Column
}

// VarOption configures one variable insertion.
type VarOption func(*varConfig)

// WithName sets the variable name. Defaults to var(<index>).
func WithName(name string) VarOption {
	return func(c *varConfig) { c.name = name }
}

// WithBounds sets the lower and upper bound. Defaults to [0, Inf()).
func WithBounds(lb, ub float64) VarOption {
	return func(c *varConfig) { c.lb, c.ub = lb, ub }
}

// WithObjCoeff sets the objective coefficient. Defaults to 0.
func WithObjCoeff(obj float64) VarOption {
	return func(c *varConfig) { c.obj = obj }
}

// WithVarType sets the variable kind. Defaults to Continuous.
func WithVarType(vt VarType) VarOption {
	return func(c *varConfig) { c.vt = vt }
}

// WithColumn sets the coefficients of the new variable in existing
// constraints.
func WithColumn(col *Column) VarOption {
	return func(c *varConfig) { c.col = col }
}

// newVarConfig applies opts for the variable about to sit at index.
// Binary variables keep bounds [0, 1] whatever the caller set; this is a
// correctness rule, not a default.
func newVarConfig(index int, opts []VarOption) varConfig {
	cfg := varConfig{ub: Inf()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.name == "" {
		cfg.name = fmt.Sprintf("var(%d)", index)
	}
	if cfg.vt == Binary {
		cfg.lb, cfg.ub = 0, 1
	}
	return cfg
}

// Add appends a new variable and returns its handle. The variable's index is
// the collection length before the call; exactly one engine mutation is
// issued and nothing is appended if it fails.
func (vl *VarList) Add(opts ...VarOption) (*Var, error) {
	cfg := newVarConfig(len(vl.vars), opts)
	if err := checkColumn(vl.model, cfg.col); err != nil {
		return nil, err
	}
	if err := vl.model.engine.AddVar(cfg.obj, cfg.lb, cfg.ub, cfg.vt, cfg.col, cfg.name); err != nil {
		return nil, fmt.Errorf("engine add var: %w", err)
	}
	profile.RecordVariable()
	v := &Var{model: vl.model, idx: len(vl.vars)}
	vl.vars = append(vl.vars, v)
	debug.Assert(len(vl.vars) == vl.model.engine.NumCols(), "variable list out of sync with engine")
	return v, nil
}

// At returns the variable at index i.
func (vl *VarList) At(i int) (*Var, error) {
	if i < 0 || i >= len(vl.vars) {
		return nil, fmt.Errorf("%w: variable index %d, length %d", ErrOutOfRange, i, len(vl.vars))
	}
	return vl.vars[i], nil
}

// ByName resolves a variable by name; see Model.VarByName.
func (vl *VarList) ByName(name string) (*Var, error) {
	return vl.model.VarByName(name)
}

// Get looks a variable up by integer index or by name.
func (vl *VarList) Get(key any) (*Var, error) {
	switch k := key.(type) {
	case int:
		return vl.At(k)
	case string:
		return vl.ByName(k)
	default:
		return nil, fmt.Errorf("%w: unrecognized key type %T", ErrInvalidKey, key)
	}
}

// Len returns the number of live variables.
func (vl *VarList) Len() int {
	return len(vl.vars)
}

// Remove deletes the given variables in one engine batch and compacts the
// collection. Survivors keep their relative order and receive dense
// zero-based indices; removed handles are permanently detached, through
// every reference held to them. Already-detached handles are skipped. On
// error the collection and all handles are unchanged.
func (vl *VarList) Remove(vars []*Var) error {
	removed, positions, err := markRemovals(vl.model, len(vl.vars), vars)
	if err != nil {
		return err
	}
	if err := vl.model.engine.RemoveVars(positions); err != nil {
		return fmt.Errorf("engine remove vars: %w", err)
	}
	vl.vars = compact(vl.vars, removed)
	log := logger.Logger()
	log.Debug().Int("removed", len(positions)).Int("remaining", len(vl.vars)).Msg("compacted variable list")
	debug.Assert(len(vl.vars) == vl.model.engine.NumCols(), "variable list out of sync with engine")
	return nil
}

// Rebuild discards the collection and replaces it with n fresh handles at
// indices 0..n-1. Destructive resynchronization: handles held across a
// Rebuild no longer correspond to this collection and must not be reused.
func (vl *VarList) Rebuild(n int) {
	vl.vars = utils.MapRange(0, n, func(i int) *Var {
		return &Var{model: vl.model, idx: i}
	})
}
