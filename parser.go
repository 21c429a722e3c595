package tabscout

// Parser builds a labeled tree from markup.
type Parser interface {
	// Parse turns markup into a tree of labeled nodes.
	// Element labels, child order, and attributes are preserved;
	// markup is never validated, malformed input parses best-effort.
	Parse(markup string) (*Node, error)
}

// Selector narrows markup to the subtrees matching a selector expression.
// Matches are returned as independent trees in document order.
type Selector interface {
	Select(markup string, selector string) ([]*Node, error)
}
