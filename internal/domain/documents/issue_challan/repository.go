package issue_challan

import (
	"context"
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
)

// Repository defines operations for issue challan documents.
type Repository interface {
	Create(ctx context.Context, doc *IssueChallan) error
	GetByID(ctx context.Context, docID id.ID) (*IssueChallan, error)
	GetByNumber(ctx context.Context, number string) (*IssueChallan, error)
	Update(ctx context.Context, doc *IssueChallan) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*IssueChallan], error)

	// ListForClient returns all challans for a client within an optional date
	// window, lines included, ordered by date. This is the billing data feed.
	ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*IssueChallan, error)
}

// ListFilter for filtering issue challans.
type ListFilter struct {
	domain.ListFilter

	ClientID *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
}
