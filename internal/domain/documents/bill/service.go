package bill

import (
	"context"
	"fmt"
	"time"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/core/tx"
	"platedepot/internal/core/types"
	"platedepot/internal/domain"
	"platedepot/internal/domain/billing"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/domain/documents/return_challan"
	"platedepot/pkg/logger"
	"platedepot/pkg/numerator"
)

const (
	// NumberPrefix is the display prefix for bills.
	NumberPrefix = "BILL"

	// NumeratorStrategy: bills are accounting documents, numbers must be
	// sequential without gaps.
	NumeratorStrategy = numerator.StrategyStrict
)

// ClientProvider is the slice of the client catalog the billing run needs.
type ClientProvider interface {
	GetByID(ctx context.Context, clientID id.ID) (*client.Client, error)
}

// IssueFeed supplies issue challans for a billing window.
type IssueFeed interface {
	ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*issue_challan.IssueChallan, error)
}

// ReturnFeed supplies return challans for a billing window.
type ReturnFeed interface {
	ListForClient(ctx context.Context, clientID id.ID, from, to *time.Time) ([]*return_challan.ReturnChallan, error)
}

// GenerateRequest describes one billing run.
type GenerateRequest struct {
	ClientID id.ID     `json:"clientId"`
	BillDate time.Time `json:"billDate"`

	// PeriodFrom overrides the billed window start. When nil the service uses
	// the day after the client's last bill, or all history for a first bill.
	PeriodFrom *time.Time `json:"periodFrom,omitempty"`

	// RatesOverride replaces the client's negotiated rates for this run.
	RatesOverride *billing.RateConfig `json:"ratesOverride,omitempty"`

	AdvancePaid types.Money          `json:"advancePaid"`
	Extras      []billing.ChargeLine `json:"extras,omitempty"`
	Discounts   []billing.ChargeLine `json:"discounts,omitempty"`
	Payments    []billing.Payment    `json:"payments,omitempty"`
}

// Service orchestrates billing runs: it snapshots the client's rates, feeds
// the ledger engine with challans, assigns the bill number and persists the
// result atomically. The engine itself stays pure; everything stateful lives
// here.
type Service struct {
	clients   ClientProvider
	issues    IssueFeed
	returns   ReturnFeed
	repo      Repository
	numerator *numerator.Service
	txManager tx.Manager

	// clock is swappable in tests
	clock func() time.Time
}

// NewService creates a new bill service.
func NewService(
	clients ClientProvider,
	issues IssueFeed,
	returns ReturnFeed,
	repo Repository,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		clients:   clients,
		issues:    issues,
		returns:   returns,
		repo:      repo,
		numerator: num,
		txManager: txManager,
		clock:     time.Now,
	}
}

// Preview runs the engine without assigning a number or persisting anything.
// It backs the "calculate" button on the billing form.
func (s *Service) Preview(ctx context.Context, req GenerateRequest) (billing.BillResult, error) {
	res, _, err := s.calculate(ctx, req)
	return res, err
}

// Generate runs the engine, assigns a bill number and persists the bill with
// its full audit trail. Nothing is stored when the calculation fails.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Bill, error) {
	res, periodFrom, err := s.calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	cfg := numerator.DefaultConfig(NumberPrefix)
	number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, s.clock())
	if err != nil {
		return nil, fmt.Errorf("generate bill number: %w", err)
	}
	res.BillNumber = number

	doc := FromResult(res, periodFrom)
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc); err != nil {
			return fmt.Errorf("save bill lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "bill generated",
		"id", doc.ID,
		"number", doc.Number,
		"client_id", doc.ClientID,
		"final_due", doc.FinalDue,
		"clamped", doc.BalanceClamped,
	)
	if doc.BalanceClamped {
		logger.Warn(ctx, "bill generated with clamped plate balance",
			"number", doc.Number, "client_id", doc.ClientID)
	}

	return doc, nil
}

// calculate fetches challans for the billed window and runs the engine.
func (s *Service) calculate(ctx context.Context, req GenerateRequest) (billing.BillResult, *time.Time, error) {
	var zero billing.BillResult

	if id.IsNil(req.ClientID) {
		return zero, nil, apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	billDate := req.BillDate
	if billDate.IsZero() {
		billDate = s.clock()
	}

	cl, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return zero, nil, err
	}

	periodFrom, err := s.resolvePeriodFrom(ctx, req, billDate)
	if err != nil {
		return zero, nil, err
	}

	issues, err := s.issues.ListForClient(ctx, req.ClientID, periodFrom, &billDate)
	if err != nil {
		return zero, nil, fmt.Errorf("fetch issue challans: %w", err)
	}
	returns, err := s.returns.ListForClient(ctx, req.ClientID, periodFrom, &billDate)
	if err != nil {
		return zero, nil, fmt.Errorf("fetch return challans: %w", err)
	}

	rawIssues := make([]billing.RawTransaction, 0, len(issues))
	for _, doc := range issues {
		rawIssues = append(rawIssues, doc.ToRawTransaction())
	}
	rawReturns := make([]billing.RawTransaction, 0, len(returns))
	for _, doc := range returns {
		rawReturns = append(rawReturns, doc.ToRawTransaction())
	}

	rates := cl.RateConfig()
	if req.RatesOverride != nil {
		rates = *req.RatesOverride
	}

	res, err := billing.CalculateBill(billing.CalculateInput{
		ClientID:    req.ClientID,
		Issues:      rawIssues,
		Returns:     rawReturns,
		BillDate:    billDate,
		Rates:       rates,
		AdvancePaid: req.AdvancePaid,
		Extras:      req.Extras,
		Discounts:   req.Discounts,
		Payments:    req.Payments,
	})
	if err != nil {
		return zero, nil, err
	}

	return res, periodFrom, nil
}

// resolvePeriodFrom applies the "previous bill date becomes the next bill's
// start" convention that keeps consecutive bills from double-billing a period.
func (s *Service) resolvePeriodFrom(ctx context.Context, req GenerateRequest, billDate time.Time) (*time.Time, error) {
	if req.PeriodFrom != nil {
		return req.PeriodFrom, nil
	}

	last, err := s.repo.LastBillDate(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("last bill date: %w", err)
	}
	if last == nil {
		return nil, nil // first bill, all history
	}

	if billDate.Before(*last) {
		return nil, apperror.NewConflict("client already billed through this date").
			WithDetail("lastBillDate", last.Format("2006-01-02")).
			WithDetail("billDate", billDate.Format("2006-01-02"))
	}

	from := last.AddDate(0, 0, 1)
	return &from, nil
}

// GetByID retrieves a bill with all table parts.
func (s *Service) GetByID(ctx context.Context, billID id.ID) (*Bill, error) {
	doc, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.LoadLines(ctx, doc); err != nil {
		return nil, fmt.Errorf("load bill lines: %w", err)
	}
	doc.DateRanges = billing.BuildDateRanges(doc.Ledger, doc.Date)
	return doc, nil
}

// List retrieves bills with filtering (scalar fields only).
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	return s.repo.List(ctx, filter)
}

// Delete soft-deletes a bill. The ledger lines stay for audit.
func (s *Service) Delete(ctx context.Context, billID id.ID) error {
	return s.repo.Delete(ctx, billID)
}
