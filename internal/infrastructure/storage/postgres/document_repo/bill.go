package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
	"platedepot/internal/domain/billing"
	"platedepot/internal/domain/documents/bill"
	"platedepot/internal/infrastructure/storage/postgres"
)

const (
	billsTable            = "doc_bills"
	billLedgerLinesTable  = "doc_bill_ledger_lines"
	billChargeLinesTable  = "doc_bill_charge_lines"
	billPaymentLinesTable = "doc_bill_payment_lines"

	chargeKindExtra    = "extra"
	chargeKindDiscount = "discount"
)

// BillRepo implements bill.Repository.
type BillRepo struct {
	*BaseDocumentRepo[*bill.Bill]
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txManager *postgres.TxManager) *BillRepo {
	return &BillRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*bill.Bill](
			txManager,
			billsTable,
			postgres.ExtractDBColumns[bill.Bill](),
			func() *bill.Bill { return &bill.Bill{} },
		),
	}
}

// SaveLines persists the ledger, charge and payment table parts of the bill.
// Existing lines are replaced.
func (r *BillRepo) SaveLines(ctx context.Context, doc *bill.Bill) error {
	querier := r.txManager.GetQuerier(ctx)

	for _, table := range []string{billLedgerLinesTable, billChargeLinesTable, billPaymentLinesTable} {
		if _, err := querier.Exec(ctx, "DELETE FROM "+table+" WHERE document_id = $1", doc.ID); err != nil {
			return fmt.Errorf("delete existing lines from %s: %w", table, err)
		}
	}

	if len(doc.Ledger) > 0 {
		q := r.Builder().
			Insert(billLedgerLinesTable).
			Columns(
				"document_id", "line_no", "entry_date", "kind", "plate_count",
				"document_number", "balance_before", "balance_after",
				"effective_days", "rent_amount",
			)
		for i, e := range doc.Ledger {
			q = q.Values(
				doc.ID, i+1, e.Date, e.Kind, e.PlateCount,
				e.DocumentNumber, e.BalanceBefore, e.BalanceAfter,
				e.EffectiveDays, e.RentAmount,
			)
		}
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert ledger lines: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert ledger lines: %w", err)
		}
	}

	if len(doc.Extras) > 0 || len(doc.Discounts) > 0 {
		q := r.Builder().
			Insert(billChargeLinesTable).
			Columns("document_id", "line_no", "kind", "note", "quantity", "unit_price", "total")
		lineNo := 0
		for _, c := range doc.Extras {
			lineNo++
			q = q.Values(doc.ID, lineNo, chargeKindExtra, c.Note, c.Quantity, c.UnitPrice, c.Total)
		}
		for _, c := range doc.Discounts {
			lineNo++
			q = q.Values(doc.ID, lineNo, chargeKindDiscount, c.Note, c.Quantity, c.UnitPrice, c.Total)
		}
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert charge lines: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert charge lines: %w", err)
		}
	}

	if len(doc.Payments) > 0 {
		q := r.Builder().
			Insert(billPaymentLinesTable).
			Columns("document_id", "line_no", "note", "amount")
		for i, p := range doc.Payments {
			q = q.Values(doc.ID, i+1, p.Note, p.Amount)
		}
		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build insert payment lines: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert payment lines: %w", err)
		}
	}

	return nil
}

// LoadLines fills the table parts of an already fetched bill.
func (r *BillRepo) LoadLines(ctx context.Context, doc *bill.Bill) error {
	querier := r.txManager.GetQuerier(ctx)

	ledgerQ := r.Builder().
		Select(
			"entry_date", "kind", "plate_count", "document_number",
			"balance_before", "balance_after", "effective_days", "rent_amount",
		).
		From(billLedgerLinesTable).
		Where(squirrel.Eq{"document_id": doc.ID}).
		OrderBy("line_no")

	sql, args, err := ledgerQ.ToSql()
	if err != nil {
		return fmt.Errorf("build ledger query: %w", err)
	}
	doc.Ledger = nil
	if err := pgxscan.Select(ctx, querier, &doc.Ledger, sql, args...); err != nil {
		return fmt.Errorf("load ledger lines: %w", err)
	}

	chargeQ := r.Builder().
		Select("kind", "note", "quantity", "unit_price", "total").
		From(billChargeLinesTable).
		Where(squirrel.Eq{"document_id": doc.ID}).
		OrderBy("line_no")

	sql, args, err = chargeQ.ToSql()
	if err != nil {
		return fmt.Errorf("build charge query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("load charge lines: %w", err)
	}
	defer rows.Close()

	doc.Extras = nil
	doc.Discounts = nil
	for rows.Next() {
		var kind string
		var line billing.ChargeLine
		if err := rows.Scan(&kind, &line.Note, &line.Quantity, &line.UnitPrice, &line.Total); err != nil {
			return fmt.Errorf("scan charge line: %w", err)
		}
		switch kind {
		case chargeKindDiscount:
			doc.Discounts = append(doc.Discounts, line)
		default:
			doc.Extras = append(doc.Extras, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("charge lines: %w", err)
	}

	paymentQ := r.Builder().
		Select("note", "amount").
		From(billPaymentLinesTable).
		Where(squirrel.Eq{"document_id": doc.ID}).
		OrderBy("line_no")

	sql, args, err = paymentQ.ToSql()
	if err != nil {
		return fmt.Errorf("build payment query: %w", err)
	}
	doc.Payments = nil
	if err := pgxscan.Select(ctx, querier, &doc.Payments, sql, args...); err != nil {
		return fmt.Errorf("load payment lines: %w", err)
	}

	return nil
}

func (r *BillRepo) List(ctx context.Context, filter bill.ListFilter) (domain.ListResult[*bill.Bill], error) {
	result := domain.ListResult[*bill.Bill]{
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

	if filter.UnpaidOnly {
		q = q.Where(squirrel.Gt{"final_due": 0})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
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

// LastBillDate returns the date of the client's most recent bill, or nil
// when the client has never been billed.
func (r *BillRepo) LastBillDate(ctx context.Context, clientID id.ID) (*time.Time, error) {
	q := r.Builder().
		Select("MAX(date)").
		From(billsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var last *time.Time
	querier := r.txManager.GetQuerier(ctx)
	err = querier.QueryRow(ctx, sql, args...).Scan(&last)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last bill date: %w", err)
	}

	return last, nil
}
