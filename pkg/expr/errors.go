package expr

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedCharacter   = errors.New("unexpected character")
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrDanglingOperator      = errors.New("dangling operator")
	ErrEmptyExpression       = errors.New("empty expression")
	ErrOverflow              = errors.New("integer overflow")
	ErrIncompleteTree        = errors.New("incomplete expression tree")
	ErrIO                    = errors.New("input error")
	ErrMismatch              = errors.New("cross-check mismatch")
)

// UnexpectedCharacterError is returned by Tokenize for any character outside
// the expression grammar. Position is the byte offset within the line.
type UnexpectedCharacterError struct {
	Char     rune
	Position int
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at column %d", e.Char, e.Position+1)
}

func (e *UnexpectedCharacterError) Is(target error) bool {
	return target == ErrUnexpectedCharacter
}

// OverflowError reports an int64 overflow while parsing a literal or
// combining two values.
type OverflowError struct {
	Op    Operator
	Left  int64
	Right int64
	// Literal is set when the overflow came from a number literal.
	Literal string
}

func (e *OverflowError) Error() string {
	if e.Literal != "" {
		return fmt.Sprintf("integer overflow: literal %s does not fit in 64 bits", e.Literal)
	}
	return fmt.Sprintf("integer overflow: %d %s %d", e.Left, e.Op, e.Right)
}

func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// LineError annotates an error with the 1-based input line it came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// MismatchError is returned by Verify when govaluate disagrees with the tree
// evaluator.
type MismatchError struct {
	Expression string
	Evaluated  int64
	Reference  float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cross-check of %s: evaluated %d, govaluate gave %v", e.Expression, e.Evaluated, e.Reference)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}
