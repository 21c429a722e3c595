package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/tabscout"
	"github.com/fwojciec/tabscout/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	scanRec, err := deps.Scans.FindScanByID(deps.Ctx, c.ScanID)
	if err != nil {
		if tabscout.ErrorCode(err) == tabscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: scan %q not found. Use 'tabscout list' to see available scans.\n", c.ScanID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
		return err
	}

	groups, err := deps.Groups.FindGroups(deps.Ctx, tabscout.GroupFilter{
		ScanID: &scanRec.ID,
		SortBy: tabscout.SortByRank,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
		return err
	}

	if len(groups) == 0 {
		fmt.Fprintf(deps.Stdout, "No groups to export for %s.\n", scanRec.SourceURL)
		return nil
	}

	name := c.Name
	if name == "" {
		name = scanRec.ID
	}

	store := deps.Store
	if store == nil {
		store = fs.NewStore(c.Dir, name)
	}

	// A failed save aborts the whole export; no partial directory remains.
	for _, g := range groups {
		if err := store.Save(deps.Ctx, g); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
			return err
		}
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to finalize export: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d groups to %s\n", len(groups), filepath.Join(c.Dir, name))
	return nil
}
