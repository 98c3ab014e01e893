package model

// DetachedIndex is the index of a handle that was removed from its
// collection. A detached handle must not be used to address the engine
// again.
const DetachedIndex = -1

// Var is a handle to one decision variable (column) of a Model.
//
// The index is owned by the collection holding the variable: removing
// earlier variables rewrites it, and removing the variable itself sets it to
// DetachedIndex for every reference to the handle, wherever held.
type Var struct {
	model *Model
	idx   int
}

// Index returns the variable's current column index, or DetachedIndex if it
// was removed.
func (v *Var) Index() int { return v.idx }

// Detached reports whether the variable was removed from its model.
func (v *Var) Detached() bool { return v.idx == DetachedIndex }

func (v *Var) owner() *Model  { return v.model }
func (v *Var) index() int     { return v.idx }
func (v *Var) setIndex(i int) { v.idx = i }

// Constr is a handle to one constraint (row) of a Model.
//
// Index ownership follows the same rule as Var: only the collection holding
// the constraint writes it.
type Constr struct {
	model *Model
	idx   int
}

// Index returns the constraint's current row index, or DetachedIndex if it
// was removed.
func (c *Constr) Index() int { return c.idx }

// Detached reports whether the constraint was removed from its model.
func (c *Constr) Detached() bool { return c.idx == DetachedIndex }

func (c *Constr) owner() *Model  { return c.model }
func (c *Constr) index() int     { return c.idx }
func (c *Constr) setIndex(i int) { c.idx = i }
