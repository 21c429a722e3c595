package mock

import "github.com/fwojciec/tabscout"

var _ tabscout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of tabscout.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]tabscout.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]tabscout.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
