package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/tabscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tabscout.ScanService = (*ScanService)(nil)

// ScanService implements tabscout.ScanService using SQLite.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan creates a new scan.
func (s *ScanService) CreateScan(ctx context.Context, scan *tabscout.Scan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	scan.ID = uuid.New().String()
	scan.ScannedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (id, source_url, title, content_hash, group_count, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, scan.ID, scan.SourceURL, scan.Title, scan.ContentHash, scan.GroupCount,
		scan.ScannedAt.Format(time.RFC3339))

	return err
}

// FindScanByID retrieves a scan by ID.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*tabscout.Scan, error) {
	var scan tabscout.Scan
	var scannedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, content_hash, group_count, scanned_at
		FROM scans
		WHERE id = ?
	`, id).Scan(&scan.ID, &scan.SourceURL, &scan.Title, &scan.ContentHash,
		&scan.GroupCount, &scannedAt)

	if err == sql.ErrNoRows {
		return nil, tabscout.Errorf(tabscout.ENOTFOUND, "scan not found")
	}
	if err != nil {
		return nil, err
	}

	scan.ScannedAt, err = parseTimestamp(scannedAt, "scanned_at")
	if err != nil {
		return nil, err
	}

	return &scan, nil
}

// FindScans retrieves scans matching the filter, most recent first.
func (s *ScanService) FindScans(ctx context.Context, filter tabscout.ScanFilter) ([]*tabscout.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, content_hash, group_count, scanned_at FROM scans WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY scanned_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*tabscout.Scan
	for rows.Next() {
		var scan tabscout.Scan
		var scannedAt string

		if err := rows.Scan(&scan.ID, &scan.SourceURL, &scan.Title, &scan.ContentHash,
			&scan.GroupCount, &scannedAt); err != nil {
			return nil, err
		}

		scan.ScannedAt, err = parseTimestamp(scannedAt, "scanned_at")
		if err != nil {
			return nil, err
		}

		scans = append(scans, &scan)
	}

	return scans, rows.Err()
}

// DeleteScan permanently removes a scan. Associated groups are removed by
// the ON DELETE CASCADE constraint.
func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return tabscout.Errorf(tabscout.ENOTFOUND, "scan not found")
	}

	return nil
}
