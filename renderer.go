package tabscout

// Renderer serializes a node tree back to markup.
type Renderer interface {
	// Render writes the tree rooted at n as markup.
	// Rendering a node parsed from well-formed input round-trips its
	// structure; formatting details (whitespace, attribute quoting)
	// may differ from the source.
	Render(n *Node) (string, error)
}
