package billing

import (
	"testing"

	"platedepot/internal/core/types"
)

func ledgerFixture(t *testing.T) []LedgerEntry {
	t.Helper()
	events := []TransactionEvent{ev(KindIssue, 1, 100), ev(KindReturn, 11, 40)}
	entries, _ := Partition(events, day(20), rateOne())
	return entries
}

// Core total 1600, one extra of 200, one discount of 50, advance 500 and one
// payment of 300: adjusted 1750, final due 950.
func TestAggregate_ChargesAndPayments(t *testing.T) {
	ledger := ledgerFixture(t)

	extras := []ChargeLine{NewChargeLine("crane hire", 1, types.NewMoneyFromInt(200))}
	discounts := []ChargeLine{NewChargeLine("goodwill", 1, types.NewMoneyFromInt(50))}
	payments := []Payment{{Note: "cash", Amount: types.NewMoneyFromInt(300)}}

	res := Aggregate(ledger, rateOne(), extras, discounts, payments, types.NewMoneyFromInt(500))

	if !res.TotalRent.Equal(types.NewMoneyFromInt(1600)) {
		t.Errorf("totalRent: expected 1600, got %s", res.TotalRent)
	}
	if !res.CoreTotal.Equal(types.NewMoneyFromInt(1600)) {
		t.Errorf("coreTotal: expected 1600, got %s", res.CoreTotal)
	}
	if !res.AdjustedTotal.Equal(types.NewMoneyFromInt(1750)) {
		t.Errorf("adjustedTotal: expected 1750, got %s", res.AdjustedTotal)
	}
	if !res.FinalDue.Equal(types.NewMoneyFromInt(950)) {
		t.Errorf("finalDue: expected 950, got %s", res.FinalDue)
	}
	if !res.BalanceCarryForward.IsZero() {
		t.Errorf("carryForward: expected 0, got %s", res.BalanceCarryForward)
	}
}

func TestAggregate_ServiceChargeModes(t *testing.T) {
	ledger := ledgerFixture(t) // 100 plates issued, rent 1600

	tests := []struct {
		name string
		mod  func(*RateConfig)
		want int64
	}{
		{"per plate", func(r *RateConfig) {
			r.ServiceChargeMode = ServicePerPlate
			r.ServiceChargeRate = types.NewMoneyFromInt(2)
		}, 200},
		{"percentage", func(r *RateConfig) {
			r.ServiceChargeMode = ServicePercentage
			r.ServiceChargePercent = types.NewMoneyFromInt(10)
		}, 160},
		{"fixed", func(r *RateConfig) {
			r.ServiceChargeMode = ServiceFixed
			r.ServiceChargeFixed = types.NewMoneyFromInt(75)
		}, 75},
		{"disabled", func(r *RateConfig) {
			r.ServiceChargeMode = ServiceDisabled
			r.ServiceChargeRate = types.NewMoneyFromInt(99)
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := rateOne()
			tt.mod(&rates)
			res := Aggregate(ledger, rates, nil, nil, nil, types.Zero())
			if !res.ServiceCharge.Equal(types.NewMoneyFromInt(tt.want)) {
				t.Errorf("expected service charge %d, got %s", tt.want, res.ServiceCharge)
			}
		})
	}
}

func TestAggregate_LostPlatePenalty(t *testing.T) {
	ledger := ledgerFixture(t) // issued 100, returned 40 -> 60 lost

	rates := rateOne()
	rates.LostPlatePenalty = types.NewMoneyFromInt(5)

	res := Aggregate(ledger, rates, nil, nil, nil, types.Zero())
	if res.LostPlates != 60 {
		t.Errorf("expected 60 lost plates, got %d", res.LostPlates)
	}
	if !res.LostPlatePenalty.Equal(types.NewMoneyFromInt(300)) {
		t.Errorf("expected penalty 300, got %s", res.LostPlatePenalty)
	}
}

func TestAggregate_WorkerCharge(t *testing.T) {
	ledger := ledgerFixture(t)

	rates := rateOne()
	rates.WorkerCharge = types.NewMoneyFromInt(120)

	res := Aggregate(ledger, rates, nil, nil, nil, types.Zero())
	if !res.CoreTotal.Equal(types.NewMoneyFromInt(1720)) {
		t.Errorf("expected coreTotal 1720, got %s", res.CoreTotal)
	}
}

// When payments exceed what is owed the surplus becomes a carry-forward
// credit; exactly one of finalDue and balanceCarryForward is non-zero.
func TestAggregate_CarryForward(t *testing.T) {
	ledger := ledgerFixture(t) // adjusted 1600

	res := Aggregate(ledger, rateOne(), nil, nil, nil, types.NewMoneyFromInt(2000))

	if !res.FinalDue.IsZero() {
		t.Errorf("expected zero finalDue, got %s", res.FinalDue)
	}
	if !res.BalanceCarryForward.Equal(types.NewMoneyFromInt(400)) {
		t.Errorf("expected carry forward 400, got %s", res.BalanceCarryForward)
	}
}

func TestAggregate_DueCarryForwardExclusive(t *testing.T) {
	ledger := ledgerFixture(t)

	for paid := int64(0); paid <= 3200; paid += 400 {
		res := Aggregate(ledger, rateOne(), nil, nil, nil, types.NewMoneyFromInt(paid))
		duePos := res.FinalDue.IsPositive()
		cfPos := res.BalanceCarryForward.IsPositive()
		if duePos && cfPos {
			t.Errorf("paid=%d: both finalDue %s and carryForward %s are positive",
				paid, res.FinalDue, res.BalanceCarryForward)
		}
	}

	// Exact settlement leaves both at zero.
	res := Aggregate(ledger, rateOne(), nil, nil, nil, types.NewMoneyFromInt(1600))
	if !res.FinalDue.IsZero() || !res.BalanceCarryForward.IsZero() {
		t.Errorf("exact settlement: due=%s carryForward=%s", res.FinalDue, res.BalanceCarryForward)
	}
}

func TestAggregate_NegativeDiscountTotalsUseMagnitude(t *testing.T) {
	ledger := ledgerFixture(t)

	// A discount entered with a negative amount still reduces the total.
	discounts := []ChargeLine{NewChargeLine("correction", 1, types.NewMoneyFromInt(-50))}
	res := Aggregate(ledger, rateOne(), nil, discounts, nil, types.Zero())
	if !res.AdjustedTotal.Equal(types.NewMoneyFromInt(1550)) {
		t.Errorf("expected adjusted 1550, got %s", res.AdjustedTotal)
	}
}

func TestAggregate_EmptyLedger(t *testing.T) {
	res := Aggregate(nil, rateOne(), nil, nil, nil, types.Zero())
	if !res.TotalRent.IsZero() || !res.FinalDue.IsZero() {
		t.Errorf("empty ledger: rent=%s due=%s", res.TotalRent, res.FinalDue)
	}
}
