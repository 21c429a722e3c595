package main

import (
	"fmt"

	"github.com/fwojciec/tabscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tabscout.Errorf(tabscout.EINVALID, "use --force to confirm deletion")
	}

	scanRec, err := deps.Scans.FindScanByID(deps.Ctx, c.ScanID)
	if err != nil {
		if tabscout.ErrorCode(err) == tabscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: scan %q not found. Use 'tabscout list' to see available scans.\n", c.ScanID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
		return err
	}

	if err := deps.Scans.DeleteScan(deps.Ctx, scanRec.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted scan of %s\n", scanRec.SourceURL)
	return nil
}
