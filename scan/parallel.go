package scan

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"github.com/fwojciec/tabscout"
	"golang.org/x/sync/errgroup"
)

// ExtractParallel is a concurrent variant of tabscout.ExtractRankedGroups.
// Parent enumeration stays sequential (the walk itself is inherently
// ordered), while candidate scoring fans out over a worker pool. Results
// land in enumeration-indexed slots, so the final ordering is identical to
// the sequential extraction for the same tree and scope.
//
// Workers of one or less defaults to the number of CPUs.
func ExtractParallel(ctx context.Context, root *tabscout.Node, scope tabscout.Scope, workers int) (tabscout.Ranking, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	// Enumerate eligible parents in document order. Scope and candidacy
	// filtering preserve relative order, so slice index stands in for the
	// walk position when breaking ties.
	var parents []*tabscout.Node
	w := tabscout.NewWalker(root)
	for w.Next() {
		n := w.Node()
		if scope != nil && !scope(n) {
			continue
		}
		if len(tabscout.ChildHistogram(n)) == 0 {
			continue
		}
		parents = append(parents, n)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return nil, nil
	}

	// Score candidates concurrently into index-aligned slots.
	cands := make([]*tabscout.Candidate, len(parents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, parent := range parents {
		i, parent := i, parent
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cand, err := tabscout.NewCandidate(parent)
			if err != nil {
				return err
			}
			cands[i] = cand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	type indexed struct {
		cand *tabscout.Candidate
		pos  int
	}
	ordered := make([]indexed, len(cands))
	for i, cand := range cands {
		ordered[i] = indexed{cand: cand, pos: i}
	}
	slices.SortStableFunc(ordered, func(a, b indexed) int {
		if c := cmp.Compare(b.cand.DominantCount, a.cand.DominantCount); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	ranking := make(tabscout.Ranking, len(ordered))
	for i, o := range ordered {
		ranking[i] = o.cand
	}
	return ranking, nil
}
