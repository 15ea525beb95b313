package expr

// EvaluateFlat evaluates tokens strictly left to right, giving + and * the
// same precedence. Parentheses open a fresh scope on the stack; no tree is
// built.
func EvaluateFlat(tokens []Token) (int64, error) {
	if len(tokens) == 0 {
		return 0, ErrEmptyExpression
	}

	scopes := FlatScopeStack{&FlatScope{}}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			if err := scopes.Peek().Feed(tok.Value); err != nil {
				return 0, err
			}
		case TokenPlus, TokenTimes:
			op, _ := tok.Operator()
			if err := scopes.Peek().SetOperator(op); err != nil {
				return 0, err
			}
		case TokenLParen:
			scopes.Push(&FlatScope{})
		case TokenRParen:
			if len(scopes) == 1 {
				return 0, ErrUnbalancedParentheses
			}
			inner := scopes.Pop()
			if err := closedScopeErr(inner); err != nil {
				return 0, err
			}
			if err := scopes.Peek().Feed(inner.value); err != nil {
				return 0, err
			}
		}
	}

	if len(scopes) != 1 {
		return 0, ErrUnbalancedParentheses
	}
	top := scopes.Peek()
	if err := closedScopeErr(top); err != nil {
		return 0, err
	}
	return top.value, nil
}

func closedScopeErr(s *FlatScope) error {
	switch {
	case !s.hasValue:
		return ErrEmptyExpression
	case s.pending != "":
		return ErrDanglingOperator
	}
	return nil
}
