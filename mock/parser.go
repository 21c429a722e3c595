package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.Parser = (*Parser)(nil)

// Parser is a mock implementation of tabscout.Parser.
type Parser struct {
	ParseFn func(markup string) (*tabscout.Node, error)
}

func (p *Parser) Parse(markup string) (*tabscout.Node, error) {
	return p.ParseFn(markup)
}
