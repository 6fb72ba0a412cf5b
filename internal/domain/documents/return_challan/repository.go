package return_challan

import (
	"context"
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/domain"
)

// Repository defines operations for return challan documents.
type Repository interface {
	Create(ctx context.Context, doc *ReturnChallan) error
	GetByID(ctx context.Context, docID id.ID) (*ReturnChallan, error)
	GetByNumber(ctx context.Context, number string) (*ReturnChallan, error)
	Update(ctx context.Context, doc *ReturnChallan) error
	Delete(ctx context.Context, docID id.ID) error

	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReturnChallan], error)

	// ListForClient returns all return challans for a client within an
	// optional date window, lines included, ordered by date.
	ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*ReturnChallan, error)
}

// ListFilter for filtering return challans.
type ListFilter struct {
	domain.ListFilter

	ClientID *id.ID
	DateFrom *time.Time
	DateTo   *time.Time
}
