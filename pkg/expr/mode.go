package expr

import (
	"fmt"
	"strings"
)

type PrecedenceMode int

const (
	// ModeFlat gives + and * equal precedence.
	ModeFlat PrecedenceMode = iota
	// ModePrecedence makes + bind tighter than *.
	ModePrecedence
	// ModeConventional makes * bind tighter than +.
	ModeConventional
)

func (m PrecedenceMode) String() string {
	switch m {
	case ModeFlat:
		return "flat"
	case ModePrecedence:
		return "precedence"
	case ModeConventional:
		return "conventional"
	default:
		return fmt.Sprintf("PrecedenceMode(%d)", int(m))
	}
}

// ParseMode accepts the names returned by PrecedenceMode.String.
func ParseMode(s string) (PrecedenceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat":
		return ModeFlat, nil
	case "precedence", "addition-first":
		return ModePrecedence, nil
	case "conventional":
		return ModeConventional, nil
	}
	return 0, fmt.Errorf("unknown precedence mode %q", s)
}

// Table returns the precedence table used to build trees in this mode.
func (m PrecedenceMode) Table() PrecedenceTable {
	switch m {
	case ModePrecedence:
		return AdditionFirstPrecedence
	case ModeConventional:
		return ConventionalPrecedence
	default:
		return FlatPrecedence
	}
}

// EvaluateLine tokenizes and evaluates a single expression.
func EvaluateLine(line string, mode PrecedenceMode) (int64, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return 0, err
	}
	return EvaluateTokens(tokens, mode, false)
}

// EvaluateTokens evaluates an already tokenized line. Flat mode uses the
// scope-stack evaluator; the other modes build and walk a tree. With verify
// set the result is cross-checked with Verify.
func EvaluateTokens(tokens []Token, mode PrecedenceMode, verify bool) (int64, error) {
	if mode == ModeFlat {
		v, err := EvaluateFlat(tokens)
		if err != nil || !verify {
			return v, err
		}
		// The flat table yields an independent tree to check against.
		tree, err := ParseTreeWith(tokens, FlatPrecedence)
		if err != nil {
			return 0, err
		}
		return v, Verify(tree, v)
	}

	tree, err := ParseTreeWith(tokens, mode.Table())
	if err != nil {
		return 0, err
	}
	v, err := EvaluateTree(tree)
	if err != nil || !verify {
		return v, err
	}
	return v, Verify(tree, v)
}
