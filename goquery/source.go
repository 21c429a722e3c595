// Package goquery narrows pages with CSS selectors before extraction
// and discovers links by page region, using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/html"
)

// Ensure Source implements tabscout.Selector at compile time.
var _ tabscout.Selector = (*Source)(nil)

// Source selects subtrees of an HTML page by CSS selector.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// Select parses markup and returns the subtrees matching the CSS
// selector as labeled node trees, in document order. Each match is an
// independent root; scoping extraction to a selector means running it
// on every returned tree. Returns EINVALID if the selector does not
// compile. No matches is an empty result, not an error.
func (s *Source) Select(markup string, selector string) ([]*tabscout.Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "invalid selector %q: %v", selector, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, tabscout.Errorf(tabscout.EINVALID, "failed to parse HTML: %v", err)
	}

	var trees []*tabscout.Node
	for _, n := range doc.FindMatcher(matcher).Nodes {
		if tree := html.FromNode(n); tree != nil {
			trees = append(trees, tree)
		}
	}
	return trees, nil
}
