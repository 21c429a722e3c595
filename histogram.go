package tabscout

// Histogram counts the labels of a node's direct children.
type Histogram map[string]int

// ChildHistogram builds the label histogram over the direct children of n.
// Only immediate children are counted, never deeper descendants, so a
// wrapper between a parent and its repeating content hides the repetition
// from that parent (and surfaces it on the wrapper instead).
//
// Children with an empty label (text and other character data) are
// omitted. A parent whose children are all unlabeled therefore has an
// empty histogram; such parents are not group candidates.
func ChildHistogram(n *Node) Histogram {
	h := make(Histogram, len(n.Children))
	for _, c := range n.Children {
		if c == nil || c.Label == "" {
			continue
		}
		h[c.Label]++
	}
	return h
}

// hasLabeledChild reports whether any direct child of n carries a label.
// It answers the candidacy question without allocating a histogram.
func hasLabeledChild(n *Node) bool {
	for _, c := range n.Children {
		if c != nil && c.Label != "" {
			return true
		}
	}
	return false
}
