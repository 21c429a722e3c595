package tabscout

import "context"

// GroupStore persists groups outside the database with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes. A failed export never leaves a
// half-written directory behind.
type GroupStore interface {
	Save(ctx context.Context, group *Group) error
	Commit() error
	Abort() error
}
