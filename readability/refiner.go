package readability

import (
	"strings"

	"github.com/fwojciec/tabscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Refiner implements tabscout.Refiner at compile time.
var _ tabscout.Refiner = (*Refiner)(nil)

// Refiner wraps go-readability to narrow raw HTML to its main content.
// Readability is tuned for article-like pages; for listing-heavy pages
// the trafilatura refiner usually keeps more of the repeated structure.
type Refiner struct{}

// NewRefiner creates a new Refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine processes raw HTML and returns the main content.
func (r *Refiner) Refine(rawHTML string) (*tabscout.RefineResult, error) {
	if rawHTML == "" {
		return nil, tabscout.Errorf(tabscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &tabscout.RefineResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
