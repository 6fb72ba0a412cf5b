package billing

import (
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
)

// CalculateInput carries everything one billing run needs.
type CalculateInput struct {
	ClientID    id.ID
	Issues      []RawTransaction
	Returns     []RawTransaction
	BillDate    time.Time
	Rates       RateConfig
	AdvancePaid types.Money
	Extras      []ChargeLine
	Discounts   []ChargeLine
	Payments    []Payment
}

// CalculateBill is the composite entry point: normalize, partition, aggregate.
// It is a pure function; identical inputs yield identical results. The bill
// number is assigned by the caller before persistence.
func CalculateBill(in CalculateInput) (BillResult, error) {
	if err := in.Rates.Validate(); err != nil {
		return BillResult{}, err
	}

	events, err := Normalize(in.Issues, in.Returns)
	if err != nil {
		return BillResult{}, err
	}

	ledger, clamped := Partition(events, in.BillDate, in.Rates)

	result := Aggregate(ledger, in.Rates, in.Extras, in.Discounts, in.Payments, in.AdvancePaid)
	result.ClientID = in.ClientID
	result.BillDate = truncateToDay(in.BillDate)
	result.DateRanges = BuildDateRanges(ledger, in.BillDate)
	result.BalanceClamped = clamped
	if clamped {
		result.Warnings = append(result.Warnings,
			"returns exceeded issued plates; balance clamped at zero, check return challans")
	}

	return result, nil
}
