package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	got OutstandingReportFilter
}

func (r *captureRepo) GetOutstandingReport(_ context.Context, filter OutstandingReportFilter) (*OutstandingReport, error) {
	r.got = filter
	return &OutstandingReport{AsOf: *filter.AsOf}, nil
}

func TestGetOutstanding_Defaults(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	before := time.Now()
	_, err := svc.GetOutstanding(context.Background(), OutstandingReportFilter{})
	require.NoError(t, err)

	require.NotNil(t, repo.got.AsOf)
	require.False(t, repo.got.AsOf.Before(before))
	require.Equal(t, 100, repo.got.Limit)
}

func TestGetOutstanding_LimitCap(t *testing.T) {
	repo := &captureRepo{}
	svc := NewService(repo)

	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.GetOutstanding(context.Background(), OutstandingReportFilter{
		AsOf:  &asOf,
		Limit: 5000,
	})
	require.NoError(t, err)

	require.Equal(t, 1000, repo.got.Limit)
	require.Equal(t, asOf, report.AsOf)
}
