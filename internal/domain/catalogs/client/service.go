package client

import (
	"context"
	"fmt"
	"time"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/core/tx"
	"platedepot/internal/domain"
	"platedepot/pkg/numerator"
)

// Service provides business logic for the Client catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Client] // Embedded for delegation
	repo                            Repository
	numerator                       *numerator.Service
}

// NewService creates a new Client service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "client",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation and uniqueness checks before create.
func (s *Service) prepareForCreate(ctx context.Context, c *Client) error {
	// Generate code if not provided
	if c.Code == "" {
		cfg := numerator.DefaultConfig("CL")
		cfg.IncludeYear = false
		cfg.ResetPeriod = "never"
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkPhoneUnique(ctx, c)
}

// prepareForUpdate handles uniqueness checks before update.
func (s *Service) prepareForUpdate(ctx context.Context, c *Client) error {
	return s.checkPhoneUnique(ctx, c)
}

// checkPhoneUnique rejects a phone number already used by another client.
// Phone is how depot staff look clients up at the counter.
func (s *Service) checkPhoneUnique(ctx context.Context, c *Client) error {
	if c.Phone == nil || *c.Phone == "" {
		return nil
	}
	existing, err := s.repo.FindByPhone(ctx, *c.Phone)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewConflict("client with this phone already exists").
			WithDetail("phone", *c.Phone)
	}
	return nil
}

// FindByPhone retrieves a client by phone number.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*Client, error) {
	return s.repo.FindByPhone(ctx, phone)
}

// MustExist returns an error if the client does not exist or is deleted.
func (s *Service) MustExist(ctx context.Context, clientID id.ID) error {
	exists, err := s.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("client", clientID.String())
	}
	return nil
}
