package expr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Describe renders the tree as fully parenthesized infix text, e.g.
// "((1 + 2) * (3 + 4))". A lone leaf is rendered without parentheses.
func (t *Tree) Describe() string {
	if t == nil || len(t.Nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	t.describe(&sb, t.Root)
	return sb.String()
}

func (t *Tree) describe(sb *strings.Builder, i int) {
	if i < 0 || i >= len(t.Nodes) {
		sb.WriteString("?")
		return
	}
	n := t.Nodes[i]
	if n.IsLeaf() {
		sb.WriteString(strconv.FormatInt(n.Value, 10))
		return
	}
	sb.WriteString("(")
	t.describe(sb, n.Left)
	fmt.Fprintf(sb, " %s ", n.Op)
	t.describe(sb, n.Right)
	sb.WriteString(")")
}

func (t *Tree) String() string {
	return t.Describe()
}

// Dot writes a GraphViz digraph of the tree reachable from the root.
func (t *Tree) Dot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph expr {")
	if t != nil && len(t.Nodes) > 0 {
		t.dot(bw, t.Root)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func (t *Tree) dot(w io.Writer, i int) {
	if i < 0 || i >= len(t.Nodes) {
		fmt.Fprintf(w, "  n%d [label=\"?\" shape=plaintext];\n", i)
		return
	}
	n := t.Nodes[i]
	if n.IsLeaf() {
		fmt.Fprintf(w, "  n%d [label=\"%d\" shape=box];\n", i, n.Value)
		return
	}
	fmt.Fprintf(w, "  n%d [label=\"%s\"];\n", i, n.Op)
	for _, child := range []int{n.Left, n.Right} {
		if child == noNode {
			continue
		}
		fmt.Fprintf(w, "  n%d -> n%d;\n", i, child)
		t.dot(w, child)
	}
}
