package model

// Engine is the boundary to the underlying solving engine. The collections
// mirror every structural change through it and assume its column and row
// arrays are positional: an added entity's index is the count before the
// call, and removal positions address the current layout.
//
// Positions passed to RemoveVars and RemoveConstrs are sorted in increasing
// order and deduplicated. Implementations typically wrap a solver's C API;
// a failed call must leave the engine unchanged.
type Engine interface {
	// AddVar appends a column with the given objective coefficient, bounds,
	// kind and optional column coefficients.
	AddVar(obj, lb, ub float64, vt VarType, col *Column, name string) error

	// AddConstr appends a row built from expr.
	AddConstr(expr *LinExpr, name string) error

	// RemoveVars deletes the columns at the given positions.
	RemoveVars(positions []int) error

	// RemoveConstrs deletes the rows at the given positions.
	RemoveConstrs(positions []int) error

	// NumCols returns the live column count.
	NumCols() int

	// NumRows returns the live row count.
	NumRows() int

	// VarIndex returns the column index registered under name; duplicate
	// names resolve to the first match.
	VarIndex(name string) (int, bool)

	// ConstrIndex returns the row index registered under name; duplicate
	// names resolve to the first match.
	ConstrIndex(name string) (int, bool)
}
