// Package fs exports scanned groups as Markdown files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/tabscout"
)

// Ensure Store implements tabscout.GroupStore at compile time.
var _ tabscout.GroupStore = (*Store)(nil)

// Store implements tabscout.GroupStore with atomic update semantics.
// Groups are saved to a temporary directory, then moved atomically on Commit.
type Store struct {
	baseDir string
	name    string
}

// NewStore creates a new Store.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStore(baseDir, name string) *Store {
	return &Store{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes a group to the temporary directory.
func (s *Store) Save(_ context.Context, group *tabscout.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), GroupFilename(group))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content := FormatGroup(group)
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit atomically replaces the final directory with the temporary one.
func (s *Store) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the temporary directory and any saved groups.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// GroupFilename returns the file name for an exported group, ordered by
// rank. Example: the rank 2 group of a ul parent becomes 02-ul.md.
func GroupFilename(group *tabscout.Group) string {
	return fmt.Sprintf("%02d-%s.md", group.Rank, sanitizeLabel(group.NodeLabel))
}

// sanitizeLabel keeps node labels safe as file name components. Anything
// outside letters, digits, dash, and underscore becomes a dash, so labels
// cannot smuggle path separators or traversal sequences into the output.
func sanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "group"
	}
	return b.String()
}

// FormatGroup formats a group with YAML frontmatter.
func FormatGroup(group *tabscout.Group) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("scan: ")
	b.WriteString(group.ScanID)
	b.WriteString("\nrank: ")
	b.WriteString(strconv.Itoa(group.Rank))
	b.WriteString("\nnode: ")
	b.WriteString(group.NodeLabel)
	b.WriteString("\ndominant: ")
	b.WriteString(group.DominantLabel)
	b.WriteString("\ncount: ")
	b.WriteString(strconv.Itoa(group.DominantCount))
	b.WriteString("\n---\n\n")
	b.WriteString(group.Content)
	return b.String()
}
