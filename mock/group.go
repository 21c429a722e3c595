package mock

import (
	"context"

	"github.com/fwojciec/tabscout"
)

var _ tabscout.GroupService = (*GroupService)(nil)

// GroupService is a mock implementation of tabscout.GroupService.
type GroupService struct {
	CreateGroupFn        func(ctx context.Context, group *tabscout.Group) error
	FindGroupByIDFn      func(ctx context.Context, id string) (*tabscout.Group, error)
	FindGroupsFn         func(ctx context.Context, filter tabscout.GroupFilter) ([]*tabscout.Group, error)
	DeleteGroupsByScanFn func(ctx context.Context, scanID string) error
}

func (s *GroupService) CreateGroup(ctx context.Context, group *tabscout.Group) error {
	return s.CreateGroupFn(ctx, group)
}

func (s *GroupService) FindGroupByID(ctx context.Context, id string) (*tabscout.Group, error) {
	return s.FindGroupByIDFn(ctx, id)
}

func (s *GroupService) FindGroups(ctx context.Context, filter tabscout.GroupFilter) ([]*tabscout.Group, error) {
	return s.FindGroupsFn(ctx, filter)
}

func (s *GroupService) DeleteGroupsByScan(ctx context.Context, scanID string) error {
	return s.DeleteGroupsByScanFn(ctx, scanID)
}
