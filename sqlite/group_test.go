package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestScan(t *testing.T, db *sqlite.DB) *tabscout.Scan {
	t.Helper()
	svc := sqlite.NewScanService(db)
	scan := &tabscout.Scan{
		SourceURL: "https://example.com/listing",
		Title:     "Product Listing",
	}
	require.NoError(t, svc.CreateScan(context.Background(), scan))
	return scan
}

func TestGroupService_CreateGroup(t *testing.T) {
	t.Parallel()

	t.Run("creates group with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		group := &tabscout.Group{
			ScanID:        scan.ID,
			Rank:          1,
			NodeLabel:     "ul",
			DominantLabel: "li",
			DominantCount: 5,
			ChildCount:    5,
			Content:       "- Alpha\n- Beta\n- Gamma\n- Delta\n- Epsilon",
		}

		err := svc.CreateGroup(ctx, group)
		require.NoError(t, err)

		assert.NotEmpty(t, group.ID, "ID should be generated")
	})

	t.Run("returns error for invalid group", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		group := &tabscout.Group{} // missing required fields

		err := svc.CreateGroup(ctx, group)
		require.Error(t, err)
		assert.Equal(t, tabscout.EINVALID, tabscout.ErrorCode(err))
	})
}

func TestGroupService_FindGroupByID(t *testing.T) {
	t.Parallel()

	t.Run("returns group when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		group := &tabscout.Group{
			ScanID:        scan.ID,
			Rank:          2,
			NodeLabel:     "table",
			DominantLabel: "tr",
			DominantCount: 12,
			ChildCount:    13,
			Content:       "| Name | Price |\n| --- | --- |\n| Alpha | 10 |",
		}
		require.NoError(t, svc.CreateGroup(ctx, group))

		found, err := svc.FindGroupByID(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, group.ID, found.ID)
		assert.Equal(t, group.ScanID, found.ScanID)
		assert.Equal(t, group.Rank, found.Rank)
		assert.Equal(t, group.NodeLabel, found.NodeLabel)
		assert.Equal(t, group.DominantLabel, found.DominantLabel)
		assert.Equal(t, group.DominantCount, found.DominantCount)
		assert.Equal(t, group.ChildCount, found.ChildCount)
		assert.Equal(t, group.Content, found.Content)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		_, err := svc.FindGroupByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, tabscout.ENOTFOUND, tabscout.ErrorCode(err))
	})
}

func TestGroupService_FindGroups(t *testing.T) {
	t.Parallel()

	t.Run("filters by scan ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		// Create two scans with a group each
		scanSvc := sqlite.NewScanService(db)
		s1 := &tabscout.Scan{SourceURL: "https://example.com/p1"}
		s2 := &tabscout.Scan{SourceURL: "https://example.com/p2"}
		require.NoError(t, scanSvc.CreateScan(ctx, s1))
		require.NoError(t, scanSvc.CreateScan(ctx, s2))

		g1 := &tabscout.Group{ScanID: s1.ID, Rank: 1, NodeLabel: "ul", DominantCount: 3}
		g2 := &tabscout.Group{ScanID: s2.ID, Rank: 1, NodeLabel: "ol", DominantCount: 4}
		require.NoError(t, svc.CreateGroup(ctx, g1))
		require.NoError(t, svc.CreateGroup(ctx, g2))

		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{ScanID: &s1.ID})
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, s1.ID, groups[0].ScanID)
	})

	t.Run("filters by dominant label", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateGroup(ctx, &tabscout.Group{
			ScanID: scan.ID, Rank: 1, NodeLabel: "ul", DominantLabel: "li", DominantCount: 5,
		}))
		require.NoError(t, svc.CreateGroup(ctx, &tabscout.Group{
			ScanID: scan.ID, Rank: 2, NodeLabel: "table", DominantLabel: "tr", DominantCount: 3,
		}))

		label := "tr"
		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{DominantLabel: &label})
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "table", groups[0].NodeLabel)
	})

	t.Run("orders by rank by default", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		// Create groups with ranks out of order
		for _, rank := range []int{3, 1, 2} {
			group := &tabscout.Group{
				ScanID:        scan.ID,
				Rank:          rank,
				NodeLabel:     fmt.Sprintf("div%d", rank),
				DominantCount: 10 - rank,
			}
			require.NoError(t, svc.CreateGroup(ctx, group))
		}

		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{ScanID: &scan.ID})
		require.NoError(t, err)
		require.Len(t, groups, 3)
		assert.Equal(t, 1, groups[0].Rank)
		assert.Equal(t, 2, groups[1].Rank)
		assert.Equal(t, 3, groups[2].Rank)
	})

	t.Run("orders by dominant count when requested", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		for i, count := range []int{4, 9, 6} {
			group := &tabscout.Group{
				ScanID:        scan.ID,
				Rank:          i + 1,
				NodeLabel:     fmt.Sprintf("div%d", i+1),
				DominantCount: count,
			}
			require.NoError(t, svc.CreateGroup(ctx, group))
		}

		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{
			ScanID: &scan.ID,
			SortBy: tabscout.SortByDominantCount,
		})
		require.NoError(t, err)
		require.Len(t, groups, 3)
		assert.Equal(t, 9, groups[0].DominantCount)
		assert.Equal(t, 6, groups[1].DominantCount)
		assert.Equal(t, 4, groups[2].DominantCount)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		scan := createTestScan(t, db)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			group := &tabscout.Group{
				ScanID:        scan.ID,
				Rank:          i + 1,
				NodeLabel:     fmt.Sprintf("div%d", i+1),
				DominantCount: 1,
			}
			require.NoError(t, svc.CreateGroup(ctx, group))
		}

		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{ScanID: &scan.ID, Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, 2, groups[0].Rank)
		assert.Equal(t, 3, groups[1].Rank)
	})
}

func TestGroupService_DeleteGroupsByScan(t *testing.T) {
	t.Parallel()

	t.Run("deletes all groups for a scan", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewGroupService(db)
		ctx := context.Background()

		// Create two scans
		scanSvc := sqlite.NewScanService(db)
		s1 := &tabscout.Scan{SourceURL: "https://example.com/p1"}
		s2 := &tabscout.Scan{SourceURL: "https://example.com/p2"}
		require.NoError(t, scanSvc.CreateScan(ctx, s1))
		require.NoError(t, scanSvc.CreateScan(ctx, s2))

		// Create groups for each scan
		for i := 0; i < 3; i++ {
			group := &tabscout.Group{
				ScanID:        s1.ID,
				Rank:          i + 1,
				NodeLabel:     fmt.Sprintf("div%d", i+1),
				DominantCount: 1,
			}
			require.NoError(t, svc.CreateGroup(ctx, group))
		}
		require.NoError(t, svc.CreateGroup(ctx, &tabscout.Group{
			ScanID: s2.ID, Rank: 1, NodeLabel: "ul", DominantCount: 2,
		}))

		// Delete groups for s1
		err := svc.DeleteGroupsByScan(ctx, s1.ID)
		require.NoError(t, err)

		// Verify s1 groups are gone
		groups, err := svc.FindGroups(ctx, tabscout.GroupFilter{ScanID: &s1.ID})
		require.NoError(t, err)
		assert.Empty(t, groups)

		// Verify s2 group still exists
		groups, err = svc.FindGroups(ctx, tabscout.GroupFilter{ScanID: &s2.ID})
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})
}
