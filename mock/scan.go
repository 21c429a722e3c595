package mock

import (
	"context"

	"github.com/fwojciec/tabscout"
)

var _ tabscout.ScanService = (*ScanService)(nil)

// ScanService is a mock implementation of tabscout.ScanService.
type ScanService struct {
	CreateScanFn   func(ctx context.Context, scan *tabscout.Scan) error
	FindScanByIDFn func(ctx context.Context, id string) (*tabscout.Scan, error)
	FindScansFn    func(ctx context.Context, filter tabscout.ScanFilter) ([]*tabscout.Scan, error)
	DeleteScanFn   func(ctx context.Context, id string) error
}

func (s *ScanService) CreateScan(ctx context.Context, scan *tabscout.Scan) error {
	return s.CreateScanFn(ctx, scan)
}

func (s *ScanService) FindScanByID(ctx context.Context, id string) (*tabscout.Scan, error) {
	return s.FindScanByIDFn(ctx, id)
}

func (s *ScanService) FindScans(ctx context.Context, filter tabscout.ScanFilter) ([]*tabscout.Scan, error) {
	return s.FindScansFn(ctx, filter)
}

func (s *ScanService) DeleteScan(ctx context.Context, id string) error {
	return s.DeleteScanFn(ctx, id)
}
