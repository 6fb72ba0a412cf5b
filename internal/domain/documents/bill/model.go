// Package bill provides the Bill document: a persisted billing run with its
// full audit trail, and the service that orchestrates rate snapshots, the
// ledger engine, numbering and persistence.
package bill

import (
	"context"
	"time"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/entity"
	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
	"platedepot/internal/domain/billing"
)

// Bill is the persisted outcome of one billing run. The scalar columns are
// denormalized from the engine output; the ledger, charge and payment lines
// live in table parts. A bill is never recalculated after creation: it is the
// signed record handed to the client.
type Bill struct {
	entity.Document

	ClientID id.ID `db:"client_id" json:"clientId"`

	// PeriodFrom is the optional start of the billed window; bills follow the
	// convention "previous bill date becomes the next bill's start" to avoid
	// double-billing a period.
	PeriodFrom *time.Time `db:"period_from" json:"periodFrom,omitempty"`

	TotalIssued   int `db:"total_issued" json:"totalIssued"`
	TotalReturned int `db:"total_returned" json:"totalReturned"`
	LostPlates    int `db:"lost_plates" json:"lostPlates"`

	TotalRent           types.Money `db:"total_rent" json:"totalRent"`
	ServiceCharge       types.Money `db:"service_charge" json:"serviceCharge"`
	WorkerCharge        types.Money `db:"worker_charge" json:"workerCharge"`
	LostPlatePenalty    types.Money `db:"lost_plate_penalty" json:"lostPlatePenalty"`
	CoreTotal           types.Money `db:"core_total" json:"coreTotal"`
	ExtraChargesTotal   types.Money `db:"extra_charges_total" json:"extraChargesTotal"`
	DiscountsTotal      types.Money `db:"discounts_total" json:"discountsTotal"`
	AdjustedTotal       types.Money `db:"adjusted_total" json:"adjustedTotal"`
	AdvancePaid         types.Money `db:"advance_paid" json:"advancePaid"`
	PaymentsTotal       types.Money `db:"payments_total" json:"paymentsTotal"`
	FinalDue            types.Money `db:"final_due" json:"finalDue"`
	BalanceCarryForward types.Money `db:"balance_carry_forward" json:"balanceCarryForward"`

	BalanceClamped bool `db:"balance_clamped" json:"balanceClamped"`

	// Table parts
	Ledger    []billing.LedgerEntry `db:"-" json:"ledger"`
	Extras    []billing.ChargeLine  `db:"-" json:"extras"`
	Discounts []billing.ChargeLine  `db:"-" json:"discounts"`
	Payments  []billing.Payment     `db:"-" json:"payments"`

	// DateRanges are rebuilt from the ledger for display, never stored.
	DateRanges []billing.DateRange `db:"-" json:"dateRanges,omitempty"`
}

// FromResult builds a Bill document from an engine result.
func FromResult(res billing.BillResult, periodFrom *time.Time) *Bill {
	b := &Bill{
		Document: entity.NewDocument(),
		ClientID: res.ClientID,

		PeriodFrom: periodFrom,

		TotalIssued:   res.TotalIssued,
		TotalReturned: res.TotalReturned,
		LostPlates:    res.LostPlates,

		TotalRent:           res.TotalRent,
		ServiceCharge:       res.ServiceCharge,
		WorkerCharge:        res.WorkerCharge,
		LostPlatePenalty:    res.LostPlatePenalty,
		CoreTotal:           res.CoreTotal,
		ExtraChargesTotal:   res.ExtraChargesTotal,
		DiscountsTotal:      res.DiscountsTotal,
		AdjustedTotal:       res.AdjustedTotal,
		AdvancePaid:         res.AdvancePaid,
		PaymentsTotal:       res.PaymentsTotal,
		FinalDue:            res.FinalDue,
		BalanceCarryForward: res.BalanceCarryForward,

		BalanceClamped: res.BalanceClamped,

		Ledger:     res.Ledger,
		Extras:     res.Extras,
		Discounts:  res.Discounts,
		Payments:   res.Payments,
		DateRanges: res.DateRanges,
	}
	b.Number = res.BillNumber
	b.Date = res.BillDate
	return b
}

// Validate implements entity.Validatable.
func (b *Bill) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if b.FinalDue.IsNegative() || b.BalanceCarryForward.IsNegative() {
		return apperror.NewValidation("due amounts cannot be negative")
	}

	if b.FinalDue.IsPositive() && b.BalanceCarryForward.IsPositive() {
		return apperror.NewValidation("bill cannot carry both a due amount and a credit")
	}

	return nil
}
