package client

import (
	"context"

	"platedepot/internal/domain"
)

// Repository defines persistence operations for the Client catalog.
type Repository interface {
	domain.CatalogRepository[*Client]

	// FindByPhone retrieves a client by phone number.
	FindByPhone(ctx context.Context, phone string) (*Client, error)
}
