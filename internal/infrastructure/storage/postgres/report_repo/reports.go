// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"platedepot/internal/domain/reports"
	"platedepot/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetOutstandingReport computes per-client plate balances from issue and
// return challans, with the unpaid due summed from persisted bills.
func (r *ReportRepo) GetOutstandingReport(ctx context.Context, filter reports.OutstandingReportFilter) (*reports.OutstandingReport, error) {
	asOf := time.Now()
	if filter.AsOf != nil {
		asOf = *filter.AsOf
	}

	query := `
		WITH issued AS (
			SELECT d.client_id,
			       SUM(l.quantity + l.partner_quantity) AS plates,
			       MAX(d.date) AS last_date
			FROM doc_issue_challans d
			JOIN doc_issue_challan_lines l ON l.document_id = d.id
			WHERE d.deletion_mark = false AND d.date <= $1
			GROUP BY d.client_id
		),
		returned AS (
			SELECT d.client_id,
			       SUM(l.quantity + l.partner_quantity) AS plates,
			       MAX(d.date) AS last_date
			FROM doc_return_challans d
			JOIN doc_return_challan_lines l ON l.document_id = d.id
			WHERE d.deletion_mark = false AND d.date <= $1
			GROUP BY d.client_id
		),
		dues AS (
			SELECT client_id, SUM(final_due) AS unpaid
			FROM doc_bills
			WHERE deletion_mark = false AND date <= $1
			GROUP BY client_id
		)
		SELECT c.id AS client_id,
		       c.code AS client_code,
		       c.name AS client_name,
		       COALESCE(i.plates, 0)::int AS total_issued,
		       COALESCE(ret.plates, 0)::int AS total_returned,
		       GREATEST(COALESCE(i.plates, 0) - COALESCE(ret.plates, 0), 0)::int AS outstanding,
		       GREATEST(i.last_date, ret.last_date) AS last_movement,
		       COALESCE(d.unpaid, 0) AS unpaid_due
		FROM cat_clients c
		LEFT JOIN issued i ON i.client_id = c.id
		LEFT JOIN returned ret ON ret.client_id = c.id
		LEFT JOIN dues d ON d.client_id = c.id
		WHERE c.deletion_mark = false
	`
	args := []any{asOf}
	argIndex := 2

	if len(filter.ClientIDs) > 0 {
		placeholders := make([]string, len(filter.ClientIDs))
		for i, clientID := range filter.ClientIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, clientID)
			argIndex++
		}
		query += fmt.Sprintf(" AND c.id IN (%s)", strings.Join(placeholders, ","))
	}

	if filter.ExcludeZero {
		query += " AND COALESCE(i.plates, 0) - COALESCE(ret.plates, 0) > 0"
	}

	query += " ORDER BY c.name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.OutstandingReportItem
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("outstanding report: %w", err)
	}

	totalOutstanding := 0
	for _, item := range items {
		totalOutstanding += item.Outstanding
	}

	return &reports.OutstandingReport{
		AsOf:             asOf,
		Items:            items,
		TotalItems:       len(items),
		TotalOutstanding: totalOutstanding,
	}, nil
}
