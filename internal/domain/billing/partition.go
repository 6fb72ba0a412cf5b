package billing

import (
	"time"

	"platedepot/internal/core/types"
)

// Partition walks the ordered events, maintains the running plate balance and
// emits one ledger entry per event. Each entry carries the balance that
// applied after it and the number of days that balance is billed for before
// the next event (or the bill date, for the last entry, inclusive of both
// endpoints).
//
// The returned flag reports whether the balance was ever clamped at zero
// (more plates returned than issued). Clamping is a data-entry smell, not an
// error: the ledger is still produced and the caller surfaces a warning.
//
// This is the algorithm the depot's revenue depends on: it makes "how many
// plates were out, for how long, at what point in time" reproducible from the
// raw challans.
func Partition(events []TransactionEvent, billDate time.Time, rates RateConfig) ([]LedgerEntry, bool) {
	rates = rates.normalized()
	billDate = truncateToDay(billDate)

	entries := make([]LedgerEntry, 0, len(events))
	balance := 0
	clamped := false

	for i, ev := range events {
		before := balance
		switch ev.Kind {
		case KindIssue:
			balance += ev.PlateCount
		case KindReturn:
			balance -= ev.PlateCount
			if balance < 0 {
				balance = 0
				clamped = true
			}
		}

		var days int
		if i < len(events)-1 {
			days = daysBetween(ev.Date, events[i+1].Date)
		} else {
			days = daysBetween(ev.Date, billDate) + 1
		}
		if rates.ReturnDayPolicy == ReturnNextDay && ev.Kind == KindReturn && days > 0 {
			days--
		}
		if days < 0 {
			days = 0
		}

		rent := types.Zero()
		if days > 0 && balance > 0 {
			rent = rates.DailyRate.Mul(types.NewMoneyFromInt(int64(balance * days)))
		}

		entries = append(entries, LedgerEntry{
			Date:           ev.Date,
			Kind:           ev.Kind,
			PlateCount:     ev.PlateCount,
			DocumentNumber: ev.DocumentNumber,
			BalanceBefore:  before,
			BalanceAfter:   balance,
			EffectiveDays:  days,
			RentAmount:     rent,
		})
	}

	return entries, clamped
}

// BuildDateRanges projects ledger entries with non-zero rent into display
// ranges. EndDate is one day before the next entry's date, or the bill date
// for the final entry.
func BuildDateRanges(entries []LedgerEntry, billDate time.Time) []DateRange {
	billDate = truncateToDay(billDate)
	ranges := make([]DateRange, 0, len(entries))

	for i, e := range entries {
		if e.RentAmount.IsZero() {
			continue
		}
		end := billDate
		if i < len(entries)-1 {
			end = entries[i+1].Date.AddDate(0, 0, -1)
		}
		ranges = append(ranges, DateRange{
			StartDate:    e.Date,
			EndDate:      end,
			PlateBalance: e.BalanceAfter,
			Days:         e.EffectiveDays,
			Amount:       e.RentAmount,
		})
	}

	return ranges
}

// daysBetween returns whole calendar days from a to b (both at midnight UTC).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
