package dto

import (
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
	"platedepot/internal/domain/billing"
	"platedepot/internal/domain/documents/bill"
)

// --- Request DTOs ---

// ChargeLineRequest is one ad-hoc extra charge or discount.
type ChargeLineRequest struct {
	Note      string      `json:"note" binding:"required"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
}

func (r ChargeLineRequest) toChargeLine() billing.ChargeLine {
	qty := r.Quantity
	if qty == 0 {
		qty = 1
	}
	return billing.NewChargeLine(r.Note, qty, r.UnitPrice)
}

// PaymentRequest is one itemized payment against the bill.
type PaymentRequest struct {
	Note   string      `json:"note"`
	Amount types.Money `json:"amount" binding:"required"`
}

// GenerateBillRequest is the request body for preview and generation.
type GenerateBillRequest struct {
	ClientID string    `json:"clientId" binding:"required"`
	BillDate time.Time `json:"billDate" binding:"required"`

	// FromDate overrides the billed window start; default is the day after
	// the client's last bill.
	FromDate *time.Time `json:"fromDate,omitempty"`

	// Rates replaces the client's negotiated rates for this run.
	Rates *billing.RateConfig `json:"rates,omitempty"`

	AdvancePaid types.Money         `json:"advancePaid"`
	Extras      []ChargeLineRequest `json:"extras,omitempty"`
	Discounts   []ChargeLineRequest `json:"discounts,omitempty"`
	Payments    []PaymentRequest    `json:"payments,omitempty"`
}

// ToGenerateRequest converts the DTO into a service request.
func (r *GenerateBillRequest) ToGenerateRequest() (bill.GenerateRequest, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return bill.GenerateRequest{}, err
	}

	req := bill.GenerateRequest{
		ClientID:      clientID,
		BillDate:      r.BillDate,
		PeriodFrom:    r.FromDate,
		RatesOverride: r.Rates,
		AdvancePaid:   r.AdvancePaid,
	}

	for _, e := range r.Extras {
		req.Extras = append(req.Extras, e.toChargeLine())
	}
	for _, d := range r.Discounts {
		req.Discounts = append(req.Discounts, d.toChargeLine())
	}
	for _, p := range r.Payments {
		req.Payments = append(req.Payments, billing.Payment{Note: p.Note, Amount: p.Amount})
	}

	return req, nil
}

// --- Response DTOs ---

// Bills and engine results already carry complete JSON tags on the domain
// types; handlers return them directly. BillListItem trims the list view.
type BillListItem struct {
	ID                  string      `json:"id"`
	Number              string      `json:"number"`
	Date                time.Time   `json:"date"`
	ClientID            string      `json:"clientId"`
	TotalRent           types.Money `json:"totalRent"`
	AdjustedTotal       types.Money `json:"adjustedTotal"`
	FinalDue            types.Money `json:"finalDue"`
	BalanceCarryForward types.Money `json:"balanceCarryForward"`
	BalanceClamped      bool        `json:"balanceClamped"`
	DeletionMark        bool        `json:"deletionMark"`
	Version             int         `json:"version"`
}

func FromBill(b *bill.Bill) BillListItem {
	return BillListItem{
		ID:                  b.ID.String(),
		Number:              b.Number,
		Date:                b.Date,
		ClientID:            b.ClientID.String(),
		TotalRent:           b.TotalRent,
		AdjustedTotal:       b.AdjustedTotal,
		FinalDue:            b.FinalDue,
		BalanceCarryForward: b.BalanceCarryForward,
		BalanceClamped:      b.BalanceClamped,
		DeletionMark:        b.DeletionMark,
		Version:             b.Version,
	}
}
