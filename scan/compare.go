package scan

import "github.com/fwojciec/tabscout"

// ContentDiffers compares content refined from HTTP-fetched HTML vs browser-fetched HTML.
// Returns true if the browser content is significantly longer (>50%), suggesting JavaScript
// rendering adds meaningful content. Also returns true on refinement errors (assumes JS needed).
func ContentDiffers(httpHTML, browserHTML string, refiner tabscout.Refiner) bool {
	httpResult, err := refiner.Refine(httpHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	browserResult, err := refiner.Refine(browserHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	httpLen := len(httpResult.ContentHTML)
	browserLen := len(browserResult.ContentHTML)

	// Handle empty HTTP content
	if httpLen == 0 && browserLen > 0 {
		return true
	}

	// Check if browser content is >50% longer
	threshold := float64(httpLen) * 1.5
	return float64(browserLen) > threshold
}
