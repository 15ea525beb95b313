package expr

// noNode marks an empty child slot. It only appears while a tree is being
// built.
const noNode = -1

// Node is one entry in a Tree's arena. A node with an empty Op is a leaf
// holding Value; otherwise Left and Right index its operands.
type Node struct {
	Op    Operator
	Value int64
	Left  int
	Right int

	// sealed marks the root of a closed parenthesized group. Operator
	// insertion never descends past it.
	sealed bool
}

func (n Node) IsLeaf() bool {
	return n.Op == ""
}

// Tree is a binary expression tree stored as an arena of nodes addressed by
// index.
type Tree struct {
	Nodes []Node
	Root  int
}

// Node returns the node at index i.
func (t *Tree) Node(i int) Node {
	return t.Nodes[i]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// ParseTree builds an expression tree in which + binds tighter than *.
func ParseTree(tokens []Token) (*Tree, error) {
	return ParseTreeWith(tokens, AdditionFirstPrecedence)
}

// ParseTreeWith builds an expression tree in a single forward pass over
// tokens. Each operator is spliced into the right spine of the tree built
// so far, below every node that binds less tightly than it does.
func ParseTreeWith(tokens []Token, prec PrecedenceTable) (*Tree, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}

	b := &treeBuilder{
		nodes: make([]Node, 0, len(tokens)),
		prec:  prec,
	}
	root, err := b.parseExpr(&cursor{tokens: tokens}, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{Nodes: b.nodes, Root: root}, nil
}

// cursor is shared by a parse call and the recursive calls it makes for
// parenthesized groups.
type cursor struct {
	tokens []Token
	pos    int
}

func (c *cursor) peek() (Token, bool) {
	if c.pos >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *cursor) next() (Token, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

type treeBuilder struct {
	nodes []Node
	prec  PrecedenceTable
}

func (b *treeBuilder) add(n Node) int {
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1
}

// parseExpr parses atoms joined by operators until the end of input or, when
// depth > 0, the ) that closes the enclosing group.
func (b *treeBuilder) parseExpr(c *cursor, depth int) (int, error) {
	root, err := b.parseAtom(c, depth, true)
	if err != nil {
		return noNode, err
	}

	for {
		tok, ok := c.next()
		if !ok {
			if depth > 0 {
				return noNode, ErrUnbalancedParentheses
			}
			return root, nil
		}

		switch tok.Kind {
		case TokenRParen:
			if depth == 0 {
				return noNode, ErrUnbalancedParentheses
			}
			return root, nil
		case TokenPlus, TokenTimes:
			op, _ := tok.Operator()
			var slot int
			root, slot = b.insert(root, op)
			atom, err := b.parseAtom(c, depth, false)
			if err != nil {
				return noNode, err
			}
			b.nodes[slot].Right = atom
		default:
			return noNode, ErrDanglingOperator
		}
	}
}

// insert walks the right spine from root past every unsealed operator node
// that binds less tightly than op and splices a new op node into that slot.
// The displaced subtree becomes the new node's left operand. It returns the
// (possibly new) root and the index of the new node, whose right operand is
// still empty.
func (b *treeBuilder) insert(root int, op Operator) (int, int) {
	p := b.prec.of(op)

	parent, cur := noNode, root
	for {
		n := b.nodes[cur]
		if n.IsLeaf() || n.sealed || b.prec.of(n.Op) >= p {
			break
		}
		parent, cur = cur, n.Right
	}

	node := b.add(Node{Op: op, Left: cur, Right: noNode})
	if parent == noNode {
		return node, node
	}
	b.nodes[parent].Right = node
	return root, node
}

func (b *treeBuilder) parseAtom(c *cursor, depth int, first bool) (int, error) {
	tok, ok := c.next()
	if !ok {
		switch {
		case depth > 0:
			return noNode, ErrUnbalancedParentheses
		case first:
			return noNode, ErrEmptyExpression
		}
		return noNode, ErrDanglingOperator
	}

	switch tok.Kind {
	case TokenNumber:
		return b.add(Node{Value: tok.Value, Left: noNode, Right: noNode}), nil
	case TokenLParen:
		inner, err := b.parseExpr(c, depth+1)
		if err != nil {
			return noNode, err
		}
		b.nodes[inner].sealed = true
		return inner, nil
	case TokenRParen:
		switch {
		case depth == 0:
			return noNode, ErrUnbalancedParentheses
		case first:
			return noNode, ErrEmptyExpression
		}
	}
	return noNode, ErrDanglingOperator
}
