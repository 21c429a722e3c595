package main

import (
	"fmt"

	"github.com/fwojciec/tabscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	scans, err := deps.Scans.FindScans(deps.Ctx, tabscout.ScanFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabscout.ErrorMessage(err))
		return err
	}

	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans found. Use 'tabscout scan' to create one.")
		return nil
	}

	for _, sc := range scans {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d groups  %s\n",
			sc.ID, sc.SourceURL, sc.GroupCount, sc.ScannedAt.Format("2006-01-02"))
	}

	return nil
}
