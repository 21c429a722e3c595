package tabscout

import (
	"cmp"
	"slices"
)

// Scope restricts which enumerated parents may become candidates.
// It filters candidacy only; the walk still covers the whole tree, so
// nodes below a rejected parent are evaluated as usual. A nil Scope
// accepts every parent.
type Scope func(*Node) bool

// ScopeLabels accepts parents whose label is one of the given labels.
func ScopeLabels(labels ...string) Scope {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(n *Node) bool {
		_, ok := set[n.Label]
		return ok
	}
}

// ScopeWithin accepts parents that have an ancestor with the given label.
// The parent itself does not count as its own ancestor.
func ScopeWithin(ancestorLabel string) Scope {
	return func(n *Node) bool {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Label == ancestorLabel {
				return true
			}
		}
		return false
	}
}

// ScopeMinChildren accepts parents with at least min direct children.
func ScopeMinChildren(min int) Scope {
	return func(n *Node) bool {
		return len(n.Children) >= min
	}
}

// ScopeAll combines scopes; a parent must pass every one. With no
// arguments it accepts every parent, like a nil Scope.
func ScopeAll(scopes ...Scope) Scope {
	return func(n *Node) bool {
		for _, s := range scopes {
			if !s(n) {
				return false
			}
		}
		return true
	}
}

// Ranking is an ordered list of group candidates, strongest first.
type Ranking []*Candidate

// ExtractRankedGroups scans the tree rooted at root for tabular groups:
// parents whose direct children repeat a single label. It returns every
// candidate parent ranked by dominant count, descending. Candidates with
// equal dominant counts keep their relative pre-order document position,
// so results are deterministic for a given tree.
//
// The ranking compares raw dominant counts without normalizing by the
// number of children, which favors large mixed groups over small uniform
// ones. Callers that care can reorder using Candidate.Histogram.
//
// Parents whose children are all unlabeled are skipped. A nil root or a
// tree with no eligible parent yields an empty ranking and a nil error;
// an empty result is a valid outcome, not a failure. A malformed tree
// (cycle) fails with an ESTRUCTURAL error and no partial results.
func ExtractRankedGroups(root *Node, scope Scope) (Ranking, error) {
	var ranking Ranking

	w := NewWalker(root)
	for pos := 0; w.Next(); pos++ {
		n := w.Node()
		if scope != nil && !scope(n) {
			continue
		}
		if !hasLabeledChild(n) {
			continue
		}

		cand, err := NewCandidate(n)
		if err != nil {
			return nil, err
		}
		cand.position = pos
		ranking = append(ranking, cand)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(ranking, func(a, b *Candidate) int {
		if c := cmp.Compare(b.DominantCount, a.DominantCount); c != 0 {
			return c
		}
		return cmp.Compare(a.position, b.position)
	})

	return ranking, nil
}

// Members returns the ordered direct children of the candidate at rank k
// (zero-based). The returned slice is the candidate node's own child
// slice; callers must not modify it. Returns ENOTFOUND if k is out of
// range.
func (r Ranking) Members(k int) ([]*Node, error) {
	if k < 0 || k >= len(r) {
		return nil, Errorf(ENOTFOUND, "no candidate at rank %d, ranking has %d", k, len(r))
	}
	return r[k].Node.Children, nil
}
