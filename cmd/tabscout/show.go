package main

import (
	"fmt"

	"github.com/fwojciec/tabscout"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
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

	// A scan without groups is a valid result, not an error.
	if len(groups) == 0 {
		fmt.Fprintf(deps.Stdout, "No groups found for %s.\n", scanRec.SourceURL)
		return nil
	}

	if c.Full {
		// Print the groups with their rendered Markdown content
		fmt.Fprintln(deps.Stdout, tabscout.FormatGroups(groups))
		return nil
	}

	// Print summary listing
	title := scanRec.Title
	if title == "" {
		title = scanRec.SourceURL
	}
	fmt.Fprintf(deps.Stdout, "Groups for %s (%d total):\n\n", title, len(groups))
	for _, g := range groups {
		fmt.Fprintf(deps.Stdout, "  %d. <%s> with %d <%s> children\n",
			g.Rank, g.NodeLabel, g.DominantCount, g.DominantLabel)
	}

	return nil
}
