package mock

import (
	"context"

	"github.com/fwojciec/tabscout"
)

var _ tabscout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of tabscout.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *tabscout.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *tabscout.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
