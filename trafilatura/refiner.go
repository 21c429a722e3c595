package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/fwojciec/tabscout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Refiner implements tabscout.Refiner at compile time.
var _ tabscout.Refiner = (*Refiner)(nil)

// Refiner wraps go-trafilatura to narrow raw HTML to its main content.
type Refiner struct{}

// NewRefiner creates a new Refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine processes raw HTML and returns the main content.
func (r *Refiner) Refine(rawHTML string) (*tabscout.RefineResult, error) {
	if rawHTML == "" {
		return nil, errors.New("empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &tabscout.RefineResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
