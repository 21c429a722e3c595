package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.Selector = (*Selector)(nil)

// Selector is a mock implementation of tabscout.Selector.
type Selector struct {
	SelectFn func(markup string, selector string) ([]*tabscout.Node, error)
}

func (s *Selector) Select(markup string, selector string) ([]*tabscout.Node, error) {
	return s.SelectFn(markup, selector)
}
