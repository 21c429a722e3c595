// Package html builds labeled node trees from HTML markup using
// golang.org/x/net/html, and renders trees back to markup.
package html

import (
	"fmt"
	"strings"

	"github.com/fwojciec/tabscout"
	"golang.org/x/net/html"
)

// Ensure Parser implements tabscout.Parser at compile time.
var _ tabscout.Parser = (*Parser)(nil)

// Parser builds node trees from HTML documents or fragments.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup into a labeled tree rooted at the document's top
// element. Parsing is tolerant: malformed markup is repaired the way
// browsers repair it, so fragments come back wrapped in html/body.
func (p *Parser) Parse(markup string) (*tabscout.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return FromNode(c), nil
		}
	}
	return nil, tabscout.Errorf(tabscout.EINVALID, "markup contains no elements")
}

// FromNode converts an element of an x/net/html tree, with its subtree,
// into a labeled node tree. Labels are the lowercase tag names the parser
// produces. Child elements convert recursively; text becomes unlabeled
// child nodes so interleaving with elements survives; whitespace-only
// text, comments, and doctypes are dropped.
// Returns nil if n is not an element node.
func FromNode(n *html.Node) *tabscout.Node {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}

	node := &tabscout.Node{Label: n.Data}
	for _, a := range n.Attr {
		node.Attrs = append(node.Attrs, tabscout.Attr{Key: a.Key, Val: a.Val})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			node.AppendChild(FromNode(c))
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			node.AppendChild(&tabscout.Node{Text: c.Data})
		}
	}

	return node
}
