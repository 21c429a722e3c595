package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.Refiner = (*Refiner)(nil)

// Refiner is a mock implementation of tabscout.Refiner.
type Refiner struct {
	RefineFn func(html string) (*tabscout.RefineResult, error)
}

func (r *Refiner) Refine(html string) (*tabscout.RefineResult, error) {
	return r.RefineFn(html)
}
