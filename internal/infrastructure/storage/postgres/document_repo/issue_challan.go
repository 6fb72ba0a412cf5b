package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/infrastructure/storage/postgres"
)

const (
	issueChallansTable     = "doc_issue_challans"
	issueChallanLinesTable = "doc_issue_challan_lines"
)

// IssueChallanRepo implements issue_challan.Repository.
type IssueChallanRepo struct {
	*BaseDocumentRepo[*issue_challan.IssueChallan]
}

// NewIssueChallanRepo creates a new issue challan repository.
func NewIssueChallanRepo(txManager *postgres.TxManager) *IssueChallanRepo {
	return &IssueChallanRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*issue_challan.IssueChallan](
			txManager,
			issueChallansTable,
			postgres.ExtractDBColumns[issue_challan.IssueChallan](),
			func() *issue_challan.IssueChallan { return &issue_challan.IssueChallan{} },
		),
	}
}

func (r *IssueChallanRepo) GetLines(ctx context.Context, docID id.ID) ([]issue_challan.Line, error) {
	q := r.Builder().
		Select("line_id", "line_no", "plate_size", "quantity", "partner_quantity").
		From(issueChallanLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []issue_challan.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *IssueChallanRepo) SaveLines(ctx context.Context, docID id.ID, lines []issue_challan.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + issueChallanLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(issueChallanLinesTable).
		Columns("line_id", "document_id", "line_no", "plate_size", "quantity", "partner_quantity")

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.PlateSize, line.Quantity, line.PartnerQuantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

func (r *IssueChallanRepo) List(ctx context.Context, filter issue_challan.ListFilter) (domain.ListResult[*issue_challan.IssueChallan], error) {
	result := domain.ListResult[*issue_challan.IssueChallan]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"vehicle_number": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}

// ListForClient returns the client's challans with lines loaded, ordered by
// date ascending. Used as the billing data feed.
func (r *IssueChallanRepo) ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*issue_challan.IssueChallan, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("date ASC", "number ASC")

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		q = q.Where(squirrel.LtOrEq{"date": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var docs []*issue_challan.IssueChallan
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &docs, sql, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	for _, doc := range docs {
		lines, err := r.GetLines(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Lines = lines
	}

	return docs, nil
}
