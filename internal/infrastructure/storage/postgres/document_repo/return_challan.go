package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
	"platedepot/internal/domain/documents/return_challan"
	"platedepot/internal/infrastructure/storage/postgres"
)

const (
	returnChallansTable     = "doc_return_challans"
	returnChallanLinesTable = "doc_return_challan_lines"
)

// ReturnChallanRepo implements return_challan.Repository.
type ReturnChallanRepo struct {
	*BaseDocumentRepo[*return_challan.ReturnChallan]
}

// NewReturnChallanRepo creates a new return challan repository.
func NewReturnChallanRepo(txManager *postgres.TxManager) *ReturnChallanRepo {
	return &ReturnChallanRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*return_challan.ReturnChallan](
			txManager,
			returnChallansTable,
			postgres.ExtractDBColumns[return_challan.ReturnChallan](),
			func() *return_challan.ReturnChallan { return &return_challan.ReturnChallan{} },
		),
	}
}

func (r *ReturnChallanRepo) GetLines(ctx context.Context, docID id.ID) ([]return_challan.Line, error) {
	q := r.Builder().
		Select("line_id", "line_no", "plate_size", "quantity", "partner_quantity").
		From(returnChallanLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []return_challan.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *ReturnChallanRepo) SaveLines(ctx context.Context, docID id.ID, lines []return_challan.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + returnChallanLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(returnChallanLinesTable).
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

func (r *ReturnChallanRepo) List(ctx context.Context, filter return_challan.ListFilter) (domain.ListResult[*return_challan.ReturnChallan], error) {
	result := domain.ListResult[*return_challan.ReturnChallan]{
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

// ListForClient returns the client's return challans with lines loaded,
// ordered by date ascending.
func (r *ReturnChallanRepo) ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*return_challan.ReturnChallan, error) {
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

	var docs []*return_challan.ReturnChallan
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
