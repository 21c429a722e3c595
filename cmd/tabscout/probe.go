package main

import (
	"context"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/scan"
)

// ProbeFetcher probes a source URL to determine which fetcher to use.
// It fetches the page with both fetchers and compares the refined content:
// when the browser sees substantially more, the site assembles its groups
// client-side and further fetching goes through the browser.
//
// Decision flow:
//   - HTTP fetch fails → use the browser
//   - Browser fetch fails → use HTTP (best effort)
//   - Browser content substantially longer → use the browser
//   - Otherwise → use HTTP
//
// Always returns a valid fetcher; never fails.
func ProbeFetcher(
	ctx context.Context,
	sourceURL string,
	httpFetcher tabscout.Fetcher,
	browserFetcher tabscout.Fetcher,
	refiner tabscout.Refiner,
) tabscout.Fetcher {
	httpHTML, err := httpFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return browserFetcher
	}

	browserHTML, err := browserFetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return httpFetcher
	}

	if scan.ContentDiffers(httpHTML, browserHTML, refiner) {
		return browserFetcher
	}

	return httpFetcher
}
