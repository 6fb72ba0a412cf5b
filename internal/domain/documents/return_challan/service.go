package return_challan

import (
	"context"
	"fmt"
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/core/tx"
	"platedepot/internal/domain"
	"platedepot/pkg/logger"
	"platedepot/pkg/numerator"
)

// Service provides business operations for return challan documents.
type Service struct {
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager
}

// NewService creates a new return challan service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: num,
		txManager: txManager,
	}
}

// Create creates a new return challan.
func (s *Service) Create(ctx context.Context, doc *ReturnChallan) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "return challan created",
		"id", doc.ID, "number", doc.Number, "plates", doc.TotalPlates)
	return nil
}

// GetByID retrieves a return challan with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*ReturnChallan, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a return challan.
func (s *Service) Update(ctx context.Context, doc *ReturnChallan) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
}

// Delete soft-deletes a return challan.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	return s.repo.Delete(ctx, docID)
}

// List retrieves return challans with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReturnChallan], error) {
	return s.repo.List(ctx, filter)
}

// ListForClient returns a client's return challans with lines for a billing run.
func (s *Service) ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*ReturnChallan, error) {
	return s.repo.ListForClient(ctx, clientID, from, to)
}
