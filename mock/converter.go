package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of tabscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
