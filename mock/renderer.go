package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of tabscout.Renderer.
type Renderer struct {
	RenderFn func(n *tabscout.Node) (string, error)
}

func (r *Renderer) Render(n *tabscout.Node) (string, error) {
	return r.RenderFn(n)
}
