package tabscout

import (
	"context"
	"time"
)

// Scan represents one scanned page and the summary of what was found.
type Scan struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	GroupCount  int       `json:"groupCount"`
	ScannedAt   time.Time `json:"scannedAt"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "scan source URL required")
	}
	return nil
}

// ScanService represents a service for managing scans.
type ScanService interface {
	// CreateScan creates a new scan.
	CreateScan(ctx context.Context, scan *Scan) error

	// FindScanByID retrieves a scan by ID.
	// Returns ENOTFOUND if scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scans matching the filter, most recent first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)

	// DeleteScan permanently removes a scan and all associated groups.
	// Returns ENOTFOUND if scan does not exist.
	DeleteScan(ctx context.Context, id string) error
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
