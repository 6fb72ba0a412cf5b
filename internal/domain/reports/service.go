package reports

import (
	"context"
	"fmt"
	"time"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOutstanding generates the outstanding plates report.
func (s *Service) GetOutstanding(ctx context.Context, filter OutstandingReportFilter) (*OutstandingReport, error) {
	if filter.AsOf == nil {
		now := time.Now()
		filter.AsOf = &now
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetOutstandingReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get outstanding report: %w", err)
	}

	return report, nil
}
