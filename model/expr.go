package model

import "fmt"

// Sense is the comparison sense of a linear constraint.
type Sense uint8

const (
	SenseLE Sense = iota // terms + constant <= 0
	SenseGE              // terms + constant >= 0
	SenseEQ              // terms + constant == 0
)

func (s Sense) String() string {
	switch s {
	case SenseLE:
		return "<="
	case SenseGE:
		return ">="
	case SenseEQ:
		return "=="
	}
	return "?"
}

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Var   *Var
	Coeff float64
}

// LinExpr is the linear-expression shape handed to constraint insertion.
// It carries no algebra; the engine interprets it.
type LinExpr struct {
	Terms    []Term
	Constant float64
	Sense    Sense
}

// NewLinExpr returns an empty expression with the given sense and constant.
func NewLinExpr(sense Sense, constant float64) *LinExpr {
	return &LinExpr{Sense: sense, Constant: constant}
}

// AddTerm appends coeff*v to the expression and returns it.
func (e *LinExpr) AddTerm(v *Var, coeff float64) *LinExpr {
	e.Terms = append(e.Terms, Term{Var: v, Coeff: coeff})
	return e
}

// Column describes the coefficients of a new variable in constraints that
// already exist.
type Column struct {
	Constrs []*Constr
	Coeffs  []float64
}

// checkExpr validates that expr references live variables of m. The engine
// resolves term indices at insertion time, so a detached or foreign variable
// must be rejected before the call.
func checkExpr(m *Model, expr *LinExpr) error {
	if expr == nil {
		return fmt.Errorf("%w: nil expression", ErrInvalidKey)
	}
	for _, t := range expr.Terms {
		if t.Var == nil {
			return fmt.Errorf("%w: nil variable in expression", ErrInvalidKey)
		}
		if t.Var.model != m {
			return fmt.Errorf("expression term: %w", ErrForeignHandle)
		}
		if t.Var.Detached() {
			return fmt.Errorf("expression term: %w", ErrDetachedHandle)
		}
	}
	return nil
}

// checkColumn validates that col references live constraints of m. A nil
// column means the variable enters no existing constraint.
func checkColumn(m *Model, col *Column) error {
	if col == nil {
		return nil
	}
	if len(col.Constrs) != len(col.Coeffs) {
		return fmt.Errorf("%w: column has %d constraints and %d coefficients", ErrInvalidKey, len(col.Constrs), len(col.Coeffs))
	}
	for _, c := range col.Constrs {
		if c == nil {
			return fmt.Errorf("%w: nil constraint in column", ErrInvalidKey)
		}
		if c.model != m {
			return fmt.Errorf("column entry: %w", ErrForeignHandle)
		}
		if c.Detached() {
			return fmt.Errorf("column entry: %w", ErrDetachedHandle)
		}
	}
	return nil
}
