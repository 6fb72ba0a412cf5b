package bill

import (
	"context"
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
)

// Repository defines persistence operations for bills.
type Repository interface {
	Create(ctx context.Context, doc *Bill) error
	GetByID(ctx context.Context, docID id.ID) (*Bill, error)
	GetByNumber(ctx context.Context, number string) (*Bill, error)
	Delete(ctx context.Context, docID id.ID) error

	// SaveLines persists the ledger, charge and payment table parts.
	SaveLines(ctx context.Context, doc *Bill) error
	// LoadLines fills the table parts of an already fetched bill.
	LoadLines(ctx context.Context, doc *Bill) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error)

	// LastBillDate returns the date of the client's most recent bill, or nil
	// when the client has never been billed.
	LastBillDate(ctx context.Context, clientID id.ID) (*time.Time, error)
}

// ListFilter for filtering bills.
type ListFilter struct {
	domain.ListFilter

	ClientID *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
	// UnpaidOnly keeps bills with a positive final due.
	UnpaidOnly bool
}
