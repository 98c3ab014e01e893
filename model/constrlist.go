package model

import (
	"fmt"

	"github.com/gomip/gomip/internal/debug"
	"github.com/gomip/gomip/internal/utils"
	"github.com/gomip/gomip/logger"
	"github.com/gomip/gomip/profile"
)

// ConstrList is the caching collection of a model's constraints. Insertion
// order is index order: at any quiescent point the i-th handle has index i
// and Len() equals the engine's row count.
type ConstrList struct {
	model   *Model
	constrs []*Constr
}

// Add appends a new constraint built from expr and returns its handle. An
// empty name synthesizes constr(<index>). The expression must reference live
// variables of the same model; exactly one engine mutation is issued and
// nothing is appended if it fails.
func (cl *ConstrList) Add(expr *LinExpr, name string) (*Constr, error) {
	if err := checkExpr(cl.model, expr); err != nil {
		return nil, err
	}
	if name == "" {
		name = fmt.Sprintf("constr(%d)", len(cl.constrs))
	}
	if err := cl.model.engine.AddConstr(expr, name); err != nil {
		return nil, fmt.Errorf("engine add constr: %w", err)
	}
	profile.RecordConstraint()
	c := &Constr{model: cl.model, idx: len(cl.constrs)}
	cl.constrs = append(cl.constrs, c)
	debug.Assert(len(cl.constrs) == cl.model.engine.NumRows(), "constraint list out of sync with engine")
	return c, nil
}

// At returns the constraint at index i.
func (cl *ConstrList) At(i int) (*Constr, error) {
	if i < 0 || i >= len(cl.constrs) {
		return nil, fmt.Errorf("%w: constraint index %d, length %d", ErrOutOfRange, i, len(cl.constrs))
	}
	return cl.constrs[i], nil
}

// ByName resolves a constraint by name; see Model.ConstrByName.
func (cl *ConstrList) ByName(name string) (*Constr, error) {
	return cl.model.ConstrByName(name)
}

// Get looks a constraint up by integer index or by name.
func (cl *ConstrList) Get(key any) (*Constr, error) {
	switch k := key.(type) {
	case int:
		return cl.At(k)
	case string:
		return cl.ByName(k)
	default:
		return nil, fmt.Errorf("%w: unrecognized key type %T", ErrInvalidKey, key)
	}
}

// Len returns the number of live constraints.
func (cl *ConstrList) Len() int {
	return len(cl.constrs)
}

// Remove deletes the given constraints in one engine batch and compacts the
// collection. Survivors keep their relative order and receive dense
// zero-based indices; removed handles are permanently detached through
// every reference held to them. Already-detached handles are skipped. On
// error the collection and all handles are unchanged.
func (cl *ConstrList) Remove(constrs []*Constr) error {
	removed, positions, err := markRemovals(cl.model, len(cl.constrs), constrs)
	if err != nil {
		return err
	}
	if err := cl.model.engine.RemoveConstrs(positions); err != nil {
		return fmt.Errorf("engine remove constrs: %w", err)
	}
	cl.constrs = compact(cl.constrs, removed)
	log := logger.Logger()
	log.Debug().Int("removed", len(positions)).Int("remaining", len(cl.constrs)).Msg("compacted constraint list")
	debug.Assert(len(cl.constrs) == cl.model.engine.NumRows(), "constraint list out of sync with engine")
	return nil
}

// Rebuild discards the collection and replaces it with n fresh handles at
// indices 0..n-1. Destructive resynchronization: handles held across a
// Rebuild no longer correspond to this collection and must not be reused.
func (cl *ConstrList) Rebuild(n int) {
	cl.constrs = utils.MapRange(0, n, func(i int) *Constr {
		return &Constr{model: cl.model, idx: i}
	})
}
