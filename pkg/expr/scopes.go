package expr

// FlatScope is one level of parenthesis nesting in the flat evaluator.
type FlatScope struct {
	value    int64
	hasValue bool
	// pending is applied to the next value fed into the scope.
	pending Operator
}

// Complete reports whether the scope holds a value with nothing left to
// apply to it.
func (s *FlatScope) Complete() bool {
	return s.hasValue && s.pending == ""
}

// Feed pushes a value into the scope as if it were a number token.
func (s *FlatScope) Feed(n int64) error {
	switch {
	case s.pending != "":
		v, err := s.pending.Apply(s.value, n)
		if err != nil {
			return err
		}
		s.value = v
		s.pending = ""
	case !s.hasValue:
		s.value = n
		s.hasValue = true
	default:
		// Two atoms with nothing between them.
		return ErrDanglingOperator
	}
	return nil
}

// SetOperator records the operator waiting for the next value.
func (s *FlatScope) SetOperator(op Operator) error {
	if !s.Complete() {
		return ErrDanglingOperator
	}
	s.pending = op
	return nil
}

type FlatScopeStack []*FlatScope

func (s *FlatScopeStack) Push(v *FlatScope) {
	*s = append(*s, v)
}

func (s *FlatScopeStack) Pop() *FlatScope {
	if len(*s) == 0 {
		return nil
	}

	lastElem := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return lastElem
}

func (s *FlatScopeStack) Peek() *FlatScope {
	if len(*s) == 0 {
		return nil
	}
	return (*s)[len(*s)-1]
}
