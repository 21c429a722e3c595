package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/tabscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tabscout.GroupService = (*GroupService)(nil)

// GroupService implements tabscout.GroupService using SQLite.
type GroupService struct {
	db *DB
}

// NewGroupService creates a new GroupService.
func NewGroupService(db *DB) *GroupService {
	return &GroupService{db: db}
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, group *tabscout.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	group.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups (id, scan_id, rank, node_label, dominant_label, dominant_count, child_count, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, group.ID, group.ScanID, group.Rank, group.NodeLabel, group.DominantLabel,
		group.DominantCount, group.ChildCount, group.Content)

	return err
}

// FindGroupByID retrieves a group by ID.
func (s *GroupService) FindGroupByID(ctx context.Context, id string) (*tabscout.Group, error) {
	var group tabscout.Group

	err := s.db.QueryRowContext(ctx, `
		SELECT id, scan_id, rank, node_label, dominant_label, dominant_count, child_count, content
		FROM groups
		WHERE id = ?
	`, id).Scan(&group.ID, &group.ScanID, &group.Rank, &group.NodeLabel,
		&group.DominantLabel, &group.DominantCount, &group.ChildCount, &group.Content)

	if err == sql.ErrNoRows {
		return nil, tabscout.Errorf(tabscout.ENOTFOUND, "group not found")
	}
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// FindGroups retrieves groups matching the filter. Groups are ordered by
// rank unless the filter requests ordering by dominant count.
func (s *GroupService) FindGroups(ctx context.Context, filter tabscout.GroupFilter) ([]*tabscout.Group, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, scan_id, rank, node_label, dominant_label, dominant_count, child_count, content FROM groups WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ScanID != nil {
		query.WriteString(" AND scan_id = ?")
		args = append(args, *filter.ScanID)
	}
	if filter.DominantLabel != nil {
		query.WriteString(" AND dominant_label = ?")
		args = append(args, *filter.DominantLabel)
	}

	switch filter.SortBy {
	case tabscout.SortByDominantCount:
		query.WriteString(" ORDER BY dominant_count DESC, rank ASC")
	default:
		query.WriteString(" ORDER BY rank ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*tabscout.Group
	for rows.Next() {
		var group tabscout.Group

		if err := rows.Scan(&group.ID, &group.ScanID, &group.Rank, &group.NodeLabel,
			&group.DominantLabel, &group.DominantCount, &group.ChildCount, &group.Content); err != nil {
			return nil, err
		}

		groups = append(groups, &group)
	}

	return groups, rows.Err()
}

// DeleteGroupsByScan removes all groups for a scan.
func (s *GroupService) DeleteGroupsByScan(ctx context.Context, scanID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE scan_id = ?", scanID)
	return err
}
