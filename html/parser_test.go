package html_test

import (
	"testing"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements tabscout.Parser at compile time.
var _ tabscout.Parser = (*html.Parser)(nil)

// findByLabel returns the first descendant of n with the given label,
// searching depth-first.
func findByLabel(n *tabscout.Node, label string) *tabscout.Node {
	if n == nil {
		return nil
	}
	if n.Label == label {
		return n
	}
	for _, c := range n.Children {
		if found := findByLabel(c, label); found != nil {
			return found
		}
	}
	return nil
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses a document into a labeled tree", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><ul><li>one</li><li>two</li></ul></body></html>`

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		assert.Equal(t, "html", root.Label)

		ul := findByLabel(root, "ul")
		require.NotNil(t, ul)
		require.Len(t, ul.Children, 2)
		assert.Equal(t, "li", ul.Children[0].Label)
		assert.Equal(t, "li", ul.Children[1].Label)
	})

	t.Run("preserves child order and attributes", func(t *testing.T) {
		t.Parallel()

		markup := `<div id="main" class="content"><span>a</span><a href="/x">b</a></div>`

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		div := findByLabel(root, "div")
		require.NotNil(t, div)
		assert.Equal(t, "main", div.Attr("id"))
		assert.Equal(t, "content", div.Attr("class"))
		assert.Equal(t, "span", div.Children[0].Label)
		assert.Equal(t, "a", div.Children[1].Label)
	})

	t.Run("attaches text as unlabeled children", func(t *testing.T) {
		t.Parallel()

		markup := `<p>Hello <em>world</em>!</p>`

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		p := findByLabel(root, "p")
		require.NotNil(t, p)
		require.Len(t, p.Children, 3)
		assert.Empty(t, p.Children[0].Label)
		assert.Equal(t, "Hello ", p.Children[0].Text)
		assert.Equal(t, "em", p.Children[1].Label)
		assert.Equal(t, "!", p.Children[2].Text)
		assert.Equal(t, "Hello world!", p.InnerText())
	})

	t.Run("drops whitespace-only text and comments", func(t *testing.T) {
		t.Parallel()

		markup := "<ul>\n  <!-- items -->\n  <li>one</li>\n  <li>two</li>\n</ul>"

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		ul := findByLabel(root, "ul")
		require.NotNil(t, ul)
		require.Len(t, ul.Children, 2)
		assert.Equal(t, "li", ul.Children[0].Label)
	})

	t.Run("wires parent back-references", func(t *testing.T) {
		t.Parallel()

		markup := `<div><ul><li>x</li></ul></div>`

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		li := findByLabel(root, "li")
		require.NotNil(t, li)
		assert.Equal(t, "ul", li.Parent.Label)
		assert.Nil(t, root.Parent)
	})

	t.Run("repairs malformed markup instead of failing", func(t *testing.T) {
		t.Parallel()

		markup := `<ul><li>unclosed<li>another</ul>`

		root, err := html.NewParser().Parse(markup)

		require.NoError(t, err)
		ul := findByLabel(root, "ul")
		require.NotNil(t, ul)
		assert.Len(t, ul.Children, 2)
	})

	t.Run("parsed tree feeds group extraction", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body>
<div><a href="/1">one</a><a href="/2">two</a><a href="/3">three</a></div>
<ul><li>a</li><li>b</li><li>c</li><li>d</li><li>e</li></ul>
</body></html>`

		root, err := html.NewParser().Parse(markup)
		require.NoError(t, err)

		ranking, err := tabscout.ExtractRankedGroups(root, nil)

		require.NoError(t, err)
		require.NotEmpty(t, ranking)
		assert.Equal(t, "ul", ranking[0].Node.Label)
		assert.Equal(t, "li", ranking[0].DominantLabel)
		assert.Equal(t, 5, ranking[0].DominantCount)
	})
}

func TestFromNode_NonElement(t *testing.T) {
	t.Parallel()

	assert.Nil(t, html.FromNode(nil))
}
