package model

import "math"

// VarType is the declared kind of a decision variable.
type VarType uint8

const (
	// Continuous variables take any value within their bounds.
	Continuous VarType = iota
	// Binary variables are restricted to {0, 1}; insertion forces their
	// bounds to [0, 1] regardless of caller-supplied bounds.
	Binary
	// Integer variables take integer values within their bounds.
	Integer
)

func (t VarType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	}
	return "unknown"
}

// Inf returns positive infinity, the default upper bound of a variable.
func Inf() float64 {
	return math.Inf(1)
}
