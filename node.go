package tabscout

import "strings"

// Node is a single labeled node in a parsed markup tree. For HTML sources
// the label is the lowercase tag name; for XML it is the element name.
//
// Trees are built once by a Parser and are treated as immutable for the
// duration of an extraction. Mutating a tree while an extraction is
// running is undefined behavior.
type Node struct {
	// Label identifies the node type. Text content parses into nodes
	// with an empty label; histograms ignore unlabeled nodes.
	Label string

	// Text is the node's own text payload. HTML and XML sources attach
	// character data as unlabeled child nodes carrying only Text.
	Text string

	// Attrs holds the node's attributes in source order.
	Attrs []Attr

	// Parent is a non-owning back-reference, nil for the root.
	Parent *Node

	// Children are the direct children in document order.
	Children []*Node
}

// Attr is a single key/value attribute on a node.
type Attr struct {
	Key string
	Val string
}

// AppendChild adds child as the last child of n and sets its Parent
// back-reference.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Attr returns the value of the first attribute with the given key,
// or an empty string if the node has no such attribute.
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// InnerText returns the concatenated text content of the node and all of
// its descendants in document order.
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		c.appendText(sb)
	}
}

// Walker enumerates the parent nodes of a tree lazily in pre-order
// (depth-first, children in document order). Leaves are never yielded:
// a node appears in the sequence only if it has at least one child.
//
// Walker follows the scanner idiom:
//
//	w := tabscout.NewWalker(root)
//	for w.Next() {
//		parent := w.Node()
//		// ...
//	}
//	if err := w.Err(); err != nil {
//		// malformed tree
//	}
//
// Every node is tracked in an identity-based visited set; reaching a node
// twice means the child pointers form a cycle (or share a subtree), and
// the walk stops with an ESTRUCTURAL error. A Walker is single-use; create
// a new one to walk again. Walking the same well-formed tree twice yields
// the same sequence.
type Walker struct {
	stack   []*Node
	visited map[*Node]struct{}
	current *Node
	err     error
}

// NewWalker returns a Walker over the tree rooted at root.
// A nil root yields an empty sequence.
func NewWalker(root *Node) *Walker {
	w := &Walker{visited: make(map[*Node]struct{})}
	if root != nil {
		w.stack = append(w.stack, root)
	}
	return w
}

// Next advances to the next parent node. It returns false when the
// sequence is exhausted or the walk failed; check Err to distinguish.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}

	for len(w.stack) > 0 {
		n := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if n == nil {
			continue
		}

		if _, ok := w.visited[n]; ok {
			w.err = Errorf(ESTRUCTURAL, "node %q reachable twice, tree contains a cycle", n.Label)
			w.current = nil
			return false
		}
		w.visited[n] = struct{}{}

		// Push children in reverse so the leftmost child pops first.
		for i := len(n.Children) - 1; i >= 0; i-- {
			w.stack = append(w.stack, n.Children[i])
		}

		if len(n.Children) > 0 {
			w.current = n
			return true
		}
	}

	w.current = nil
	return false
}

// Node returns the parent node produced by the last successful call to
// Next. It returns nil before the first call and after Next returns false.
func (w *Walker) Node() *Node {
	return w.current
}

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error {
	return w.err
}
