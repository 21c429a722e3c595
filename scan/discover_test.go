package scan_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/mock"
	"github.com/fwojciec/tabscout/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("uses default concurrency of 3 when not specified", func(t *testing.T) {
		t.Parallel()

		// Track concurrent fetch count using atomics
		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32

		const numPages = 10

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				current := currentConcurrent.Add(1)
				for {
					max := maxConcurrent.Load()
					if current <= max || maxConcurrent.CompareAndSwap(max, current) {
						break
					}
				}

				// Simulate work to allow concurrency to build up
				time.Sleep(20 * time.Millisecond)
				currentConcurrent.Add(-1)
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]tabscout.DiscoveredLink, error) {
				if baseURL == "https://example.com/catalog/" {
					var discovered []tabscout.DiscoveredLink
					for i := 1; i <= numPages; i++ {
						discovered = append(discovered, tabscout.DiscoveredLink{
							URL:      fmt.Sprintf("https://example.com/catalog/page%d", i),
							Priority: tabscout.PriorityNavigation,
						})
					}
					return discovered, nil
				}
				return nil, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		// Call without WithConcurrency option - should use default of 3
		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
		)

		require.NoError(t, err)
		assert.Len(t, urls, numPages+1)

		// Default concurrency is 3, so we should never see more than 3 concurrent fetches
		assert.LessOrEqual(t, maxConcurrent.Load(), int32(3),
			"default concurrency should be 3, got max concurrent of %d", maxConcurrent.Load())
	})

	t.Run("respects concurrency setting", func(t *testing.T) {
		t.Parallel()

		// Track concurrent fetch count using atomics
		var maxConcurrent atomic.Int32
		var currentConcurrent atomic.Int32

		const numPages = 10
		const concurrency = 2

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				current := currentConcurrent.Add(1)
				for {
					max := maxConcurrent.Load()
					if current <= max || maxConcurrent.CompareAndSwap(max, current) {
						break
					}
				}

				// Simulate work to allow concurrency to build up
				time.Sleep(20 * time.Millisecond)
				currentConcurrent.Add(-1)
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]tabscout.DiscoveredLink, error) {
				if baseURL == "https://example.com/catalog/" {
					var discovered []tabscout.DiscoveredLink
					for i := 1; i <= numPages; i++ {
						discovered = append(discovered, tabscout.DiscoveredLink{
							URL:      fmt.Sprintf("https://example.com/catalog/page%d", i),
							Priority: tabscout.PriorityNavigation,
						})
					}
					return discovered, nil
				}
				return nil, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
			scan.WithConcurrency(concurrency),
		)

		require.NoError(t, err)
		assert.Len(t, urls, numPages+1)

		// With concurrency=2, we should never see more than 2 concurrent fetches
		assert.LessOrEqual(t, maxConcurrent.Load(), int32(concurrency),
			"should not exceed concurrency limit of %d, got %d", concurrency, maxConcurrent.Load())
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		attempts := make(map[string]int)
		var mu sync.Mutex

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				mu.Lock()
				attempts[url]++
				count := attempts[url]
				mu.Unlock()

				// Fail first 2 attempts for page1
				if url == "https://example.com/catalog/page1" && count < 3 {
					return "", errors.New("timeout")
				}
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]tabscout.DiscoveredLink, error) {
				if baseURL == "https://example.com/catalog/" {
					return []tabscout.DiscoveredLink{
						{URL: "https://example.com/catalog/page1", Priority: tabscout.PriorityNavigation},
					}, nil
				}
				return nil, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		// Use zero delays for fast tests
		noDelays := []time.Duration{0, 0, 0}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
			scan.WithRetryDelays(noDelays),
		)

		require.NoError(t, err)
		// Should include both pages - page1 succeeds on 3rd attempt
		assert.Len(t, urls, 2)
		assert.Contains(t, urls, "https://example.com/catalog/")
		assert.Contains(t, urls, "https://example.com/catalog/page1")

		// Verify page1 was attempted 3 times
		mu.Lock()
		page1Attempts := attempts["https://example.com/catalog/page1"]
		mu.Unlock()
		assert.Equal(t, 3, page1Attempts, "page1 should be retried")
	})

	t.Run("discovers URLs recursively from source", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/catalog/" {
					return `<html><body><nav><a href="/catalog/page1">Page 1</a><a href="/catalog/page2">Page 2</a></nav></body></html>`, nil
				}
				if url == "https://example.com/catalog/page1" {
					return `<html><body><nav><a href="/catalog/page3">Page 3</a></nav></body></html>`, nil
				}
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]tabscout.DiscoveredLink, error) {
				if baseURL == "https://example.com/catalog/" {
					return []tabscout.DiscoveredLink{
						{URL: "https://example.com/catalog/page1", Priority: tabscout.PriorityNavigation},
						{URL: "https://example.com/catalog/page2", Priority: tabscout.PriorityNavigation},
					}, nil
				}
				if baseURL == "https://example.com/catalog/page1" {
					return []tabscout.DiscoveredLink{
						{URL: "https://example.com/catalog/page3", Priority: tabscout.PriorityNavigation},
					}, nil
				}
				return nil, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
		)

		require.NoError(t, err)
		assert.Len(t, urls, 4)
		assert.Contains(t, urls, "https://example.com/catalog/")
		assert.Contains(t, urls, "https://example.com/catalog/page1")
		assert.Contains(t, urls, "https://example.com/catalog/page2")
		assert.Contains(t, urls, "https://example.com/catalog/page3")
	})

	t.Run("respects path prefix scope", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]tabscout.DiscoveredLink, error) {
				// Return links both inside and outside scope
				return []tabscout.DiscoveredLink{
					{URL: "https://example.com/catalog/page1", Priority: tabscout.PriorityNavigation},
					{URL: "https://example.com/other/page", Priority: tabscout.PriorityNavigation},    // Out of scope
					{URL: "https://different.com/catalog/page", Priority: tabscout.PriorityNavigation}, // Different host
				}, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
		)

		require.NoError(t, err)
		// Should only include source and in-scope page
		assert.Len(t, urls, 2)
		assert.Contains(t, urls, "https://example.com/catalog/")
		assert.Contains(t, urls, "https://example.com/catalog/page1")
		assert.NotContains(t, urls, "https://example.com/other/page")
		assert.NotContains(t, urls, "https://different.com/catalog/page")
	})

	t.Run("applies URL filter", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]tabscout.DiscoveredLink, error) {
				return []tabscout.DiscoveredLink{
					{URL: "https://example.com/catalog/items/v1", Priority: tabscout.PriorityNavigation},
					{URL: "https://example.com/catalog/about/team", Priority: tabscout.PriorityNavigation},
				}, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		filter := &tabscout.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/items/`)},
		}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			filter,
			fetcher,
			links,
			rateLimiter,
		)

		require.NoError(t, err)
		// Source is always included, plus filtered matches
		assert.Len(t, urls, 2)
		assert.Contains(t, urls, "https://example.com/catalog/")
		assert.Contains(t, urls, "https://example.com/catalog/items/v1")
		assert.NotContains(t, urls, "https://example.com/catalog/about/team")
	})

	t.Run("skips failed fetches without error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://example.com/catalog/" {
					return `<html><body></body></html>`, nil
				}
				return "", tabscout.Errorf(tabscout.ENOTFOUND, "not found")
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]tabscout.DiscoveredLink, error) {
				return []tabscout.DiscoveredLink{
					{URL: "https://example.com/catalog/missing", Priority: tabscout.PriorityNavigation},
				}, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		// Use zero delays for fast tests
		noDelays := []time.Duration{0, 0, 0}

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
			scan.WithRetryDelays(noDelays),
		)

		require.NoError(t, err)
		// Only source is included, failed fetch is skipped (after all retries)
		assert.Len(t, urls, 1)
		assert.Contains(t, urls, "https://example.com/catalog/")
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]tabscout.DiscoveredLink, error) {
				// Generate many links to ensure we'd normally continue
				return []tabscout.DiscoveredLink{
					{URL: "https://example.com/catalog/page1", Priority: tabscout.PriorityNavigation},
					{URL: "https://example.com/catalog/page2", Priority: tabscout.PriorityNavigation},
				}, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, _ string) error {
				// Cancel after first rate limit wait
				cancel()
				return ctx.Err()
			},
		}

		urls, err := scan.DiscoverURLs(
			ctx,
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
		)

		require.NoError(t, err)
		// Should stop early due to cancellation
		assert.Empty(t, urls)
	})

	t.Run("calls OnURL callback for each discovered URL", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<html><body></body></html>`, nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]tabscout.DiscoveredLink, error) {
				if baseURL == "https://example.com/catalog/" {
					return []tabscout.DiscoveredLink{
						{URL: "https://example.com/catalog/page1", Priority: tabscout.PriorityNavigation},
						{URL: "https://example.com/catalog/page2", Priority: tabscout.PriorityNavigation},
					}, nil
				}
				return nil, nil
			},
		}

		rateLimiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, _ string) error {
				return nil
			},
		}

		// Track URLs as they are streamed
		var streamedURLs []string
		var mu sync.Mutex

		urls, err := scan.DiscoverURLs(
			context.Background(),
			"https://example.com/catalog/",
			nil,
			fetcher,
			links,
			rateLimiter,
			scan.WithOnURL(func(url string) {
				mu.Lock()
				streamedURLs = append(streamedURLs, url)
				mu.Unlock()
			}),
		)

		require.NoError(t, err)
		assert.Len(t, urls, 3) // source + 2 pages
		assert.Len(t, streamedURLs, 3)
		assert.Contains(t, streamedURLs, "https://example.com/catalog/")
		assert.Contains(t, streamedURLs, "https://example.com/catalog/page1")
		assert.Contains(t, streamedURLs, "https://example.com/catalog/page2")
	})
}
