package billing

import (
	"fmt"
	"sort"
	"time"

	"platedepot/internal/core/apperror"
)

// Normalize merges issue and return challans into a single event list sorted
// by (date ascending, issue before return, document number). Same-day
// movements therefore net in a fixed order before any day-counting occurs,
// regardless of the order challans were fetched in.
//
// It fails with INVALID_TRANSACTION_DATA on a zero date or a negative line
// quantity; no partial list is returned.
func Normalize(issues, returns []RawTransaction) ([]TransactionEvent, error) {
	events := make([]TransactionEvent, 0, len(issues)+len(returns))

	for _, raw := range issues {
		ev, err := toEvent(raw, KindIssue)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	for _, raw := range returns {
		ev, err := toEvent(raw, KindReturn)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		if events[i].Kind != events[j].Kind {
			return events[i].Kind == KindIssue
		}
		// Document number breaks same-day same-kind ties so the ledger
		// does not depend on fetch order.
		return events[i].DocumentNumber < events[j].DocumentNumber
	})

	return events, nil
}

func toEvent(raw RawTransaction, kind EventKind) (TransactionEvent, error) {
	if raw.Date.IsZero() {
		return TransactionEvent{}, apperror.NewInvalidTransactionData(
			fmt.Sprintf("challan %q has no date", raw.DocumentNumber)).
			WithDetail("documentNumber", raw.DocumentNumber)
	}

	total := 0
	for i, line := range raw.Lines {
		if line.Quantity < 0 || line.PartnerQuantity < 0 {
			return TransactionEvent{}, apperror.NewInvalidTransactionData(
				fmt.Sprintf("challan %q line %d has a negative quantity", raw.DocumentNumber, i+1)).
				WithDetail("documentNumber", raw.DocumentNumber).
				WithDetail("line", i+1)
		}
		total += line.Quantity + line.PartnerQuantity
	}

	return TransactionEvent{
		Date:           truncateToDay(raw.Date),
		Kind:           kind,
		PlateCount:     total,
		DocumentNumber: raw.DocumentNumber,
	}, nil
}

// truncateToDay drops the time component; the ledger works in calendar days.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
