package expr

import (
	"testing"

	"github.com/Knetic/govaluate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	lines := []string{
		"1 + 2 * 3 + 4 * 5 + 6",
		"1 + (2 * 3) + (4 * (5 + 6))",
		"((2 + 4 * 9) * (6 + 9 * 8 + 6) + 6) + 2 + 4 * 2",
		"42",
	}

	for _, line := range lines {
		for _, prec := range []PrecedenceTable{FlatPrecedence, AdditionFirstPrecedence, ConventionalPrecedence} {
			tree := parse(t, line, prec)
			v, err := EvaluateTree(tree)
			require.NoError(t, err)
			assert.NoError(t, Verify(tree, v), line)
		}
	}
}

func TestVerifyMismatch(t *testing.T) {
	tree := parse(t, "1 + 2 * 3", AdditionFirstPrecedence)

	err := Verify(tree, 7)
	require.ErrorIs(t, err, ErrMismatch)

	var mErr *MismatchError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "((1 + 2) * 3)", mErr.Expression)
	assert.Equal(t, int64(7), mErr.Evaluated)
	assert.Equal(t, 9.0, mErr.Reference)
}

func TestVerifySkipsInexactRange(t *testing.T) {
	tree := parse(t, "1 + 2", AdditionFirstPrecedence)
	assert.NoError(t, Verify(tree, 1<<60))
}

// govaluate uses the conventional ordering, so the raw line can be handed to
// it directly.
func TestConventionalModeMatchesGovaluate(t *testing.T) {
	lines := []string{
		"1 + 2 * 3 + 4 * 5 + 6",
		"2 * 3 + (4 * 5)",
		"5 * 9 * (7 * 3 * 3 + 9 * 3 + (8 + 6 * 4))",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			got, err := EvaluateLine(line, ModeConventional)
			require.NoError(t, err)

			ge, err := govaluate.NewEvaluableExpression(line)
			require.NoError(t, err)
			want, err := ge.Evaluate(nil)
			require.NoError(t, err)
			assert.Equal(t, want, float64(got))
		})
	}
}

func TestEvaluateTokensVerify(t *testing.T) {
	tests := []struct {
		line string
		mode PrecedenceMode
		want int64
	}{
		{"1 + 2 * 3 + 4 * 5 + 6", ModeFlat, 71},
		{"1 + 2 * 3 + 4 * 5 + 6", ModePrecedence, 231},
		{"1 + 2 * 3 + 4 * 5 + 6", ModeConventional, 33},
		{"1 + (2 * 3) + (4 * (5 + 6))", ModePrecedence, 51},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.line, func(t *testing.T) {
			tokens, err := Tokenize(tt.line)
			require.NoError(t, err)

			for _, verify := range []bool{false, true} {
				got, err := EvaluateTokens(tokens, tt.mode, verify)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}

	tokens, err := Tokenize("1 +")
	require.NoError(t, err)
	_, err = EvaluateTokens(tokens, ModePrecedence, true)
	assert.ErrorIs(t, err, ErrDanglingOperator)
}
