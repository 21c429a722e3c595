package tabscout

import (
	"fmt"
	"strings"
)

// FormatGroups formats stored groups for display or export.
// Each group gets a heading describing its shape followed by its
// Markdown content. Groups are separated by blank lines.
func FormatGroups(groups []*Group) string {
	if len(groups) == 0 {
		return ""
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		header := fmt.Sprintf("## Group %d: <%s> with %d <%s> children",
			g.Rank, g.NodeLabel, g.DominantCount, g.DominantLabel)
		parts = append(parts, header+"\n"+g.Content)
	}

	return strings.Join(parts, "\n\n")
}
