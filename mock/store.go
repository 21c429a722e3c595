package mock

import (
	"context"

	"github.com/fwojciec/tabscout"
)

var _ tabscout.GroupStore = (*GroupStore)(nil)

// GroupStore is a mock implementation of tabscout.GroupStore.
type GroupStore struct {
	SaveFn   func(ctx context.Context, group *tabscout.Group) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *GroupStore) Save(ctx context.Context, group *tabscout.Group) error {
	return s.SaveFn(ctx, group)
}

func (s *GroupStore) Commit() error {
	return s.CommitFn()
}

func (s *GroupStore) Abort() error {
	return s.AbortFn()
}
