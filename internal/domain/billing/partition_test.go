package billing

import (
	"testing"

	"platedepot/internal/core/types"
)

func rateOne() RateConfig {
	return DefaultRateConfig(types.NewMoneyFromInt(1))
}

func ev(kind EventKind, d, count int) TransactionEvent {
	return TransactionEvent{Date: day(d), Kind: kind, PlateCount: count}
}

// Issue 100 on day 1, return 40 on day 11, bill on day 20: the first range is
// billed for 10 days at 100 plates, the second for 10 days (both endpoints
// inclusive) at 60 plates.
func TestPartition_TwoRanges(t *testing.T) {
	events := []TransactionEvent{ev(KindIssue, 1, 100), ev(KindReturn, 11, 40)}

	entries, clamped := Partition(events, day(20), rateOne())
	if clamped {
		t.Fatal("unexpected clamp")
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	e := entries[0]
	if e.BalanceAfter != 100 || e.EffectiveDays != 10 || !e.RentAmount.Equal(types.NewMoneyFromInt(1000)) {
		t.Errorf("entry 0: after=%d days=%d rent=%s", e.BalanceAfter, e.EffectiveDays, e.RentAmount)
	}
	e = entries[1]
	if e.BalanceAfter != 60 || e.EffectiveDays != 10 || !e.RentAmount.Equal(types.NewMoneyFromInt(600)) {
		t.Errorf("entry 1: after=%d days=%d rent=%s", e.BalanceAfter, e.EffectiveDays, e.RentAmount)
	}
}

func TestPartition_SameDayBill(t *testing.T) {
	events := []TransactionEvent{ev(KindIssue, 1, 50)}

	entries, _ := Partition(events, day(1), rateOne())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].EffectiveDays != 1 {
		t.Errorf("expected 1 effective day, got %d", entries[0].EffectiveDays)
	}
	if !entries[0].RentAmount.Equal(types.NewMoneyFromInt(50)) {
		t.Errorf("expected rent 50, got %s", entries[0].RentAmount)
	}
}

func TestPartition_ClampsNegativeBalance(t *testing.T) {
	events := []TransactionEvent{ev(KindIssue, 1, 10), ev(KindReturn, 5, 15)}

	entries, clamped := Partition(events, day(10), rateOne())
	if !clamped {
		t.Fatal("expected clamp flag")
	}
	last := entries[len(entries)-1]
	if last.BalanceAfter != 0 {
		t.Errorf("expected balance clamped to 0, got %d", last.BalanceAfter)
	}
	if !last.RentAmount.IsZero() {
		t.Errorf("expected zero rent for clamped entry, got %s", last.RentAmount)
	}
}

func TestPartition_EmptyEvents(t *testing.T) {
	entries, clamped := Partition(nil, day(10), rateOne())
	if len(entries) != 0 || clamped {
		t.Errorf("expected empty ledger, got %d entries clamped=%v", len(entries), clamped)
	}
}

// Multiple movements on one day are netted in tie-break order before any day
// counting: intermediate same-day entries bill zero days.
func TestPartition_SameDayEventsNetFirst(t *testing.T) {
	events := []TransactionEvent{
		ev(KindIssue, 1, 100),
		ev(KindIssue, 5, 20),
		ev(KindReturn, 5, 50),
	}

	entries, _ := Partition(events, day(10), rateOne())
	if entries[1].EffectiveDays != 0 {
		t.Errorf("same-day intermediate entry should bill 0 days, got %d", entries[1].EffectiveDays)
	}
	if !entries[1].RentAmount.IsZero() {
		t.Errorf("same-day intermediate entry should bill 0 rent, got %s", entries[1].RentAmount)
	}
	if entries[2].BalanceAfter != 70 {
		t.Errorf("expected net balance 70, got %d", entries[2].BalanceAfter)
	}
}

func TestPartition_ReturnNextDayPolicy(t *testing.T) {
	rates := rateOne()
	rates.ReturnDayPolicy = ReturnNextDay
	events := []TransactionEvent{ev(KindIssue, 1, 100), ev(KindReturn, 11, 40)}

	entries, _ := Partition(events, day(20), rates)
	// Issue entry unchanged, return entry shortened by one day.
	if entries[0].EffectiveDays != 10 {
		t.Errorf("issue entry days: expected 10, got %d", entries[0].EffectiveDays)
	}
	if entries[1].EffectiveDays != 9 {
		t.Errorf("return entry days: expected 9, got %d", entries[1].EffectiveDays)
	}
	if !entries[1].RentAmount.Equal(types.NewMoneyFromInt(540)) {
		t.Errorf("return entry rent: expected 540, got %s", entries[1].RentAmount)
	}
}

// Balance conservation: without clamping the final balance equals
// sum(issues) - sum(returns).
func TestPartition_BalanceConservation(t *testing.T) {
	events := []TransactionEvent{
		ev(KindIssue, 1, 100),
		ev(KindIssue, 3, 50),
		ev(KindReturn, 7, 30),
		ev(KindReturn, 12, 80),
	}

	entries, clamped := Partition(events, day(20), rateOne())
	if clamped {
		t.Fatal("unexpected clamp")
	}
	if got := entries[len(entries)-1].BalanceAfter; got != 40 {
		t.Errorf("expected final balance 40, got %d", got)
	}
	for i, e := range entries {
		if e.BalanceAfter < 0 {
			t.Errorf("entry %d: negative balance %d", i, e.BalanceAfter)
		}
	}
}

// Day coverage: effective days over the whole ledger sum to the span
// [firstEvent, billDate] counted once, inclusive of both endpoints.
func TestPartition_DayCoverage(t *testing.T) {
	events := []TransactionEvent{
		ev(KindIssue, 1, 10),
		ev(KindIssue, 4, 10),
		ev(KindReturn, 9, 5),
	}
	billDate := day(15)

	entries, _ := Partition(events, billDate, rateOne())
	total := 0
	for _, e := range entries {
		total += e.EffectiveDays
	}
	want := daysBetween(day(1), billDate) + 1
	if total != want {
		t.Errorf("expected %d covered days, got %d", want, total)
	}
}

// Monotonic billing: moving the bill date later never decreases total rent.
func TestPartition_MonotonicBilling(t *testing.T) {
	events := []TransactionEvent{ev(KindIssue, 1, 30), ev(KindReturn, 10, 30)}

	prev := types.Zero()
	for d := 10; d <= 25; d++ {
		entries, _ := Partition(events, day(d), rateOne())
		total := types.Zero()
		for _, e := range entries {
			total = total.Add(e.RentAmount)
		}
		if total.LessThan(prev) {
			t.Fatalf("bill date day %d: rent %s less than previous %s", d, total, prev)
		}
		prev = total
	}
}

func TestBuildDateRanges(t *testing.T) {
	events := []TransactionEvent{ev(KindIssue, 1, 100), ev(KindReturn, 11, 40)}
	entries, _ := Partition(events, day(20), rateOne())

	ranges := BuildDateRanges(entries, day(20))
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if !ranges[0].StartDate.Equal(day(1)) || !ranges[0].EndDate.Equal(day(10)) {
		t.Errorf("range 0: %v - %v", ranges[0].StartDate, ranges[0].EndDate)
	}
	if !ranges[1].StartDate.Equal(day(11)) || !ranges[1].EndDate.Equal(day(20)) {
		t.Errorf("range 1: %v - %v", ranges[1].StartDate, ranges[1].EndDate)
	}

	// Ranges are contiguous: each starts one day after the previous ends.
	gap := daysBetween(ranges[0].EndDate, ranges[1].StartDate)
	if gap != 1 {
		t.Errorf("ranges not contiguous, gap %d days", gap)
	}
}
