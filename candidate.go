package tabscout

// Candidate pairs a parent node with the label statistics of its direct
// children. Candidates are ephemeral: they reference nodes of the source
// tree and are recomputed on every extraction.
type Candidate struct {
	// Node is the parent whose children form the group.
	Node *Node

	// Histogram maps each child label to its count.
	Histogram Histogram

	// DominantLabel is the most frequent child label. When several labels
	// share the maximum count, it is the one whose first occurrence among
	// the children comes earliest in document order.
	DominantLabel string

	// DominantCount is the count of the dominant label.
	DominantCount int

	// position is the node's index in the parent enumeration sequence.
	// It fixes the order of candidates with equal dominant counts.
	position int
}

// NewCandidate evaluates the direct children of n and returns the
// resulting candidate. Returns EINVALID if n is nil and EINTERNAL if n
// has no labeled children; callers that enumerate parents with a Walker
// and skip unlabeled-only parents never see the latter.
func NewCandidate(n *Node) (*Candidate, error) {
	if n == nil {
		return nil, Errorf(EINVALID, "candidate node required")
	}

	h := ChildHistogram(n)
	if len(h) == 0 {
		return nil, Errorf(EINTERNAL, "node %q has no labeled children", n.Label)
	}

	max := 0
	for _, count := range h {
		if count > max {
			max = count
		}
	}

	// Resolve ties toward the label that appears first in document order.
	var label string
	for _, c := range n.Children {
		if c == nil || c.Label == "" {
			continue
		}
		if h[c.Label] == max {
			label = c.Label
			break
		}
	}

	return &Candidate{
		Node:          n,
		Histogram:     h,
		DominantLabel: label,
		DominantCount: max,
	}, nil
}
