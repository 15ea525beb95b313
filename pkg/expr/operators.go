package expr

import (
	"fmt"
	"math"
)

type Operator string

const (
	OperatorAdd Operator = "+"
	OperatorMul Operator = "*"
)

// Apply combines two values, reporting overflow instead of wrapping.
func (o Operator) Apply(lhs, rhs int64) (int64, error) {
	switch o {
	case OperatorAdd:
		return checkedAdd(lhs, rhs)
	case OperatorMul:
		return checkedMul(lhs, rhs)
	}
	return 0, fmt.Errorf("unknown operator %q", string(o))
}

func checkedAdd(a, b int64) (int64, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, &OverflowError{Op: OperatorAdd, Left: a, Right: b}
	}
	return c, nil
}

func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
		return 0, &OverflowError{Op: OperatorMul, Left: a, Right: b}
	}
	return c, nil
}

// PrecedenceTable maps each operator to its binding strength. Higher binds
// tighter; equal values associate to the left.
type PrecedenceTable map[Operator]int

var (
	// FlatPrecedence evaluates strictly left to right.
	FlatPrecedence = PrecedenceTable{OperatorAdd: 1, OperatorMul: 1}
	// AdditionFirstPrecedence makes + bind tighter than *.
	AdditionFirstPrecedence = PrecedenceTable{OperatorAdd: 2, OperatorMul: 1}
	// ConventionalPrecedence is the usual school ordering, * before +.
	ConventionalPrecedence = PrecedenceTable{OperatorAdd: 1, OperatorMul: 2}
)

func (p PrecedenceTable) of(op Operator) int {
	return p[op]
}
