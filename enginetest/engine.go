// Package enginetest implements an in-memory model.Engine for tests and
// examples. It records every mutating call, validates the batch-removal
// contract (sorted, deduplicated, in-range positions) and allows
// out-of-band growth to simulate a solver mutating the problem during a
// callback.
package enginetest

import (
	"fmt"
	"sync"

	"github.com/gomip/gomip/internal/utils"
	"github.com/gomip/gomip/model"
)

// Col is the engine-side image of one variable.
type Col struct {
	Name          string
	Obj, LB, UB   float64
	Kind          model.VarType
	ColumnConstrs []int
	ColumnCoeffs  []float64
}

// Row is the engine-side image of one constraint. Variable references are
// snapshotted as indices at the time AddConstr runs.
type Row struct {
	Name     string
	VarIdx   []int
	Coeffs   []float64
	Constant float64
	Sense    model.Sense
}

// Call is one recorded mutating engine call.
type Call struct {
	Op        string
	Positions []int
}

// Engine is an in-memory model.Engine. It is safe for concurrent use so
// that view tests may read while another goroutine grows the problem.
type Engine struct {
	mu    sync.RWMutex
	cols  []Col
	rows  []Row
	calls []Call
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{}
}

// AddVar appends a column. Column entries are snapshotted by constraint
// index; a detached or out-of-range constraint reference is an error and
// leaves the engine unchanged.
func (e *Engine) AddVar(obj, lb, ub float64, vt model.VarType, col *model.Column, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Op: "AddVar"})
	c := Col{Name: name, Obj: obj, LB: lb, UB: ub, Kind: vt}
	if col != nil {
		c.ColumnConstrs = make([]int, len(col.Constrs))
		c.ColumnCoeffs = append([]float64(nil), col.Coeffs...)
		for j, constr := range col.Constrs {
			i := constr.Index()
			if i < 0 || i >= len(e.rows) {
				return fmt.Errorf("enginetest: column entry %d references constraint index %d, engine has %d rows", j, i, len(e.rows))
			}
			c.ColumnConstrs[j] = i
		}
	}
	e.cols = append(e.cols, c)
	return nil
}

// AddConstr appends a row. Expression terms are snapshotted by variable
// index; a detached or out-of-range variable reference is an error and
// leaves the engine unchanged.
func (e *Engine) AddConstr(expr *model.LinExpr, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Op: "AddConstr"})
	r := Row{Name: name, Constant: expr.Constant, Sense: expr.Sense}
	r.VarIdx = make([]int, len(expr.Terms))
	r.Coeffs = make([]float64, len(expr.Terms))
	for j, t := range expr.Terms {
		i := t.Var.Index()
		if i < 0 || i >= len(e.cols) {
			return fmt.Errorf("enginetest: term %d references variable index %d, engine has %d cols", j, i, len(e.cols))
		}
		r.VarIdx[j] = i
		r.Coeffs[j] = t.Coeff
	}
	e.rows = append(e.rows, r)
	return nil
}

// RemoveVars deletes the given columns. Positions must be sorted in strictly
// increasing order and within range, matching what the model sends.
func (e *Engine) RemoveVars(positions []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Op: "RemoveVars", Positions: append([]int(nil), positions...)})
	kept, err := removeAt(e.cols, positions)
	if err != nil {
		return err
	}
	e.cols = kept
	return nil
}

// RemoveConstrs deletes the given rows under the same position contract as
// RemoveVars.
func (e *Engine) RemoveConstrs(positions []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Op: "RemoveConstrs", Positions: append([]int(nil), positions...)})
	kept, err := removeAt(e.rows, positions)
	if err != nil {
		return err
	}
	e.rows = kept
	return nil
}

func removeAt[T any](seq []T, positions []int) ([]T, error) {
	prev := -1
	for _, p := range positions {
		if p <= prev {
			return nil, fmt.Errorf("enginetest: positions not sorted and deduplicated: %v", positions)
		}
		if p >= len(seq) {
			return nil, fmt.Errorf("enginetest: position %d out of range, length %d", p, len(seq))
		}
		prev = p
	}
	out := seq[:0]
	for i, v := range seq {
		if _, found := utils.FindInSlice(positions, i); found {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// NumCols returns the live column count.
func (e *Engine) NumCols() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cols)
}

// NumRows returns the live row count.
func (e *Engine) NumRows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rows)
}

// VarIndex returns the index of the first column with the given name.
func (e *Engine) VarIndex(name string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range e.cols {
		if e.cols[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// ConstrIndex returns the index of the first row with the given name.
func (e *Engine) ConstrIndex(name string) (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range e.rows {
		if e.rows[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// InjectCols grows the engine behind the model's back, as a solver does
// when a callback adds variables.
func (e *Engine) InjectCols(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range names {
		e.cols = append(e.cols, Col{Name: name, UB: model.Inf()})
	}
}

// InjectRows grows the engine behind the model's back.
func (e *Engine) InjectRows(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range names {
		e.rows = append(e.rows, Row{Name: name, Sense: model.SenseLE})
	}
}

// Cols returns a snapshot of the engine's columns.
func (e *Engine) Cols() []Col {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Col(nil), e.cols...)
}

// Rows returns a snapshot of the engine's rows.
func (e *Engine) Rows() []Row {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Row(nil), e.rows...)
}

// Calls returns a snapshot of the recorded mutating calls in order.
func (e *Engine) Calls() []Call {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Call(nil), e.calls...)
}
