package tabscout

import "context"

// Group represents one ranked group found by a scan: a parent node whose
// direct children repeat a dominant label. Content holds the group's
// members rendered as Markdown.
type Group struct {
	ID            string `json:"id"`
	ScanID        string `json:"scanId"`
	Rank          int    `json:"rank"` // 1 is the strongest group of the scan
	NodeLabel     string `json:"nodeLabel"`
	DominantLabel string `json:"dominantLabel"`
	DominantCount int    `json:"dominantCount"`
	ChildCount    int    `json:"childCount"`
	Content       string `json:"content"` // Markdown
}

// Validate returns an error if the group contains invalid fields.
func (g *Group) Validate() error {
	if g.ScanID == "" {
		return Errorf(EINVALID, "group scan ID required")
	}
	if g.NodeLabel == "" {
		return Errorf(EINVALID, "group node label required")
	}
	if g.DominantCount < 1 {
		return Errorf(EINVALID, "group dominant count must be positive")
	}
	return nil
}

// GroupService represents a service for managing stored groups.
type GroupService interface {
	// CreateGroup creates a new group.
	CreateGroup(ctx context.Context, group *Group) error

	// FindGroupByID retrieves a group by ID.
	// Returns ENOTFOUND if group does not exist.
	FindGroupByID(ctx context.Context, id string) (*Group, error)

	// FindGroups retrieves groups matching the filter.
	FindGroups(ctx context.Context, filter GroupFilter) ([]*Group, error)

	// DeleteGroupsByScan removes all groups for a scan.
	DeleteGroupsByScan(ctx context.Context, scanID string) error
}

// SortOrder represents the sort order for group queries.
type SortOrder string

// SortOrder constants for GroupFilter.
const (
	SortByRank          SortOrder = "rank"
	SortByDominantCount SortOrder = "dominant_count"
)

// GroupFilter represents a filter for FindGroups.
type GroupFilter struct {
	ID            *string `json:"id"`
	ScanID        *string `json:"scanId"`
	DominantLabel *string `json:"dominantLabel"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
