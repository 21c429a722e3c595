package html

import (
	"strings"

	"github.com/fwojciec/tabscout"
	"golang.org/x/net/html"
)

// Ensure Renderer implements tabscout.Renderer at compile time.
var _ tabscout.Renderer = (*Renderer)(nil)

// voidElements have no closing tag and cannot hold children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Renderer serializes node trees back to HTML.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the tree rooted at n as HTML. Text and attribute values
// are escaped; unlabeled nodes render as their escaped text payload.
// Whitespace dropped during parsing is not restored.
func (r *Renderer) Render(n *tabscout.Node) (string, error) {
	if n == nil {
		return "", tabscout.Errorf(tabscout.EINVALID, "render node required")
	}

	var sb strings.Builder
	render(&sb, n)
	return sb.String(), nil
}

func render(sb *strings.Builder, n *tabscout.Node) {
	if n == nil {
		return
	}

	if n.Label == "" {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Label)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	if voidElements[n.Label] {
		return
	}

	if n.Text != "" {
		sb.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		render(sb, c)
	}

	sb.WriteString("</")
	sb.WriteString(n.Label)
	sb.WriteByte('>')
}
