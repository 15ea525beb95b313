package expr

// EvaluateTree computes the value of t with a post-order walk.
func EvaluateTree(t *Tree) (int64, error) {
	if t == nil || len(t.Nodes) == 0 {
		return 0, ErrEmptyExpression
	}
	return t.evaluate(t.Root)
}

func (t *Tree) evaluate(i int) (int64, error) {
	if i < 0 || i >= len(t.Nodes) {
		return 0, ErrIncompleteTree
	}

	n := t.Nodes[i]
	if n.IsLeaf() {
		return n.Value, nil
	}

	lhs, err := t.evaluate(n.Left)
	if err != nil {
		return 0, err
	}
	rhs, err := t.evaluate(n.Right)
	if err != nil {
		return 0, err
	}
	return n.Op.Apply(lhs, rhs)
}
