package tabscout

// Converter turns group markup into Markdown for storage and display.
type Converter interface {
	// Convert transforms HTML into Markdown. The input is typically a
	// single rendered group subtree, not a whole page.
	Convert(html string) (string, error)
}
