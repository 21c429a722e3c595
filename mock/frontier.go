package mock

import (
	"context"

	"github.com/fwojciec/tabscout"
)

var _ tabscout.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of tabscout.URLFrontier.
type URLFrontier struct {
	PushFn func(link tabscout.DiscoveredLink) bool
	PopFn  func() (tabscout.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link tabscout.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (tabscout.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ tabscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of tabscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
