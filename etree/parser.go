// Package etree builds labeled node trees from XML documents using
// github.com/beevik/etree. Any labeled tree can carry tabular groups,
// so XML feeds (RSS, exports, config dumps) go through the same
// extraction pipeline as HTML.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/tabscout"
)

// Ensure Parser implements tabscout.Parser at compile time.
var _ tabscout.Parser = (*Parser)(nil)

// Parser builds node trees from XML documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses an XML document into a labeled tree rooted at the
// document element. XML parsing is strict where HTML parsing repairs:
// malformed documents return EINVALID.
func (p *Parser) Parse(markup string) (*tabscout.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "parsing XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "document contains no elements")
	}

	return fromElement(root), nil
}

// fromElement converts an etree element, with its subtree, into a
// labeled node tree. Labels are local element names without namespace
// prefixes. Character data becomes unlabeled children; whitespace-only
// text, comments, and processing instructions are dropped.
func fromElement(el *etree.Element) *tabscout.Node {
	node := &tabscout.Node{Label: el.Tag}
	for _, a := range el.Attr {
		node.Attrs = append(node.Attrs, tabscout.Attr{Key: a.Key, Val: a.Value})
	}

	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.Element:
			node.AppendChild(fromElement(c))
		case *etree.CharData:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			node.AppendChild(&tabscout.Node{Text: c.Data})
		}
	}

	return node
}
