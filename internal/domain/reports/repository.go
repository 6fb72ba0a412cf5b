package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	GetOutstandingReport(ctx context.Context, filter OutstandingReportFilter) (*OutstandingReport, error)
}
