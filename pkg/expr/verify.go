package expr

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// maxExactFloat is the largest magnitude at which every integer is
// representable as a float64.
const maxExactFloat = 1 << 53

// Verify re-evaluates the rendered form of t with govaluate and checks the
// result against want. Results too large to be compared exactly as float64
// are not checked.
func Verify(t *Tree, want int64) error {
	if want > maxExactFloat || want < -maxExactFloat {
		return nil
	}

	rendered := t.Describe()
	expr, err := govaluate.NewEvaluableExpression(rendered)
	if err != nil {
		return fmt.Errorf("cross-check of %s: %w", rendered, err)
	}

	res, err := expr.Evaluate(nil)
	if err != nil {
		return fmt.Errorf("cross-check of %s: %w", rendered, err)
	}

	got, ok := res.(float64)
	if !ok {
		return fmt.Errorf("cross-check of %s: unexpected result type %T", rendered, res)
	}
	if math.Abs(got) > maxExactFloat {
		return nil
	}
	if got != float64(want) {
		return &MismatchError{Expression: rendered, Evaluated: want, Reference: got}
	}
	return nil
}
