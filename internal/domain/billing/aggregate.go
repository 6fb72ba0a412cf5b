package billing

import (
	"platedepot/internal/core/types"
)

var percentBase = types.NewMoneyFromInt(100)

// Aggregate prices the partitioned ledger and folds in every configured
// charge, extra, discount and payment. It assumes a validated RateConfig;
// negative rates must be rejected before this point.
//
// Exactly one of FinalDue and BalanceCarryForward is non-zero: when payments
// exceed what is owed, the surplus is reported as a carry-forward credit
// instead of a negative due amount.
func Aggregate(ledger []LedgerEntry, rates RateConfig, extras, discounts []ChargeLine, payments []Payment, advancePaid types.Money) BillResult {
	rates = rates.normalized()

	totalRent := types.Zero()
	totalIssued, totalReturned := 0, 0
	for _, e := range ledger {
		totalRent = totalRent.Add(e.RentAmount)
		switch e.Kind {
		case KindIssue:
			totalIssued += e.PlateCount
		case KindReturn:
			totalReturned += e.PlateCount
		}
	}

	var serviceCharge types.Money
	switch rates.ServiceChargeMode {
	case ServicePerPlate:
		serviceCharge = rates.ServiceChargeRate.Mul(types.NewMoneyFromInt(int64(totalIssued)))
	case ServicePercentage:
		serviceCharge = totalRent.Mul(rates.ServiceChargePercent).Div(percentBase)
	case ServiceFixed:
		serviceCharge = rates.ServiceChargeFixed
	default:
		serviceCharge = types.Zero()
	}

	lostPlates := totalIssued - totalReturned
	if lostPlates < 0 {
		lostPlates = 0
	}
	lostPenalty := rates.LostPlatePenalty.Mul(types.NewMoneyFromInt(int64(lostPlates)))

	coreTotal := totalRent.Add(serviceCharge).Add(rates.WorkerCharge).Add(lostPenalty)

	extrasTotal := types.Zero()
	for _, c := range extras {
		extrasTotal = extrasTotal.Add(c.Total)
	}
	discountsTotal := types.Zero()
	for _, c := range discounts {
		discountsTotal = discountsTotal.Add(c.Total.Abs())
	}

	adjustedTotal := coreTotal.Add(extrasTotal).Sub(discountsTotal)

	paymentsTotal := types.Zero()
	for _, p := range payments {
		paymentsTotal = paymentsTotal.Add(p.Amount)
	}

	paid := advancePaid.Add(paymentsTotal)
	finalDue := types.MaxMoney(types.Zero(), adjustedTotal.Sub(paid))
	carryForward := types.MaxMoney(types.Zero(), paid.Sub(adjustedTotal))

	return BillResult{
		Ledger:    ledger,
		Extras:    extras,
		Discounts: discounts,
		Payments:  payments,

		TotalIssued:   totalIssued,
		TotalReturned: totalReturned,
		LostPlates:    lostPlates,

		TotalRent:           totalRent,
		ServiceCharge:       serviceCharge,
		WorkerCharge:        rates.WorkerCharge,
		LostPlatePenalty:    lostPenalty,
		CoreTotal:           coreTotal,
		ExtraChargesTotal:   extrasTotal,
		DiscountsTotal:      discountsTotal,
		AdjustedTotal:       adjustedTotal,
		AdvancePaid:         advancePaid,
		PaymentsTotal:       paymentsTotal,
		FinalDue:            finalDue,
		BalanceCarryForward: carryForward,
	}
}
