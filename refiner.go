package tabscout

// RefineResult holds the refined content of an HTML page.
type RefineResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Refiner narrows a raw HTML page down to its main content before
// scanning, so navigation chrome does not compete with real groups.
type Refiner interface {
	// Refine processes raw HTML and returns the main content.
	// The title comes from page metadata (meta tags, JSON+LD, etc.).
	// The content HTML has boilerplate removed but preserves structure.
	Refine(html string) (*RefineResult, error)
}
