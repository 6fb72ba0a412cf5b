package billing

import (
	"testing"
	"time"

	"platedepot/internal/core/apperror"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func issue(num string, d int, qty int) RawTransaction {
	return RawTransaction{
		DocumentNumber: num,
		Date:           day(d),
		Lines:          []RawLine{{Quantity: qty}},
	}
}

func ret(num string, d int, qty int) RawTransaction {
	return issue(num, d, qty)
}

func TestNormalize_SortsByDateIssueFirst(t *testing.T) {
	issues := []RawTransaction{issue("UC-3", 5, 10), issue("UC-1", 1, 100)}
	returns := []RawTransaction{ret("JC-1", 5, 20), ret("JC-2", 3, 30)}

	events, err := Normalize(issues, returns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		num  string
		kind EventKind
	}{
		{"UC-1", KindIssue},
		{"JC-2", KindReturn},
		{"UC-3", KindIssue}, // same day as JC-1, issue sorts first
		{"JC-1", KindReturn},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, w := range want {
		if events[i].DocumentNumber != w.num || events[i].Kind != w.kind {
			t.Errorf("event %d: expected %s/%s, got %s/%s",
				i, w.num, w.kind, events[i].DocumentNumber, events[i].Kind)
		}
	}
}

func TestNormalize_DocumentNumberBreaksSameDayTies(t *testing.T) {
	// Same day, same kind: order must come from the document number,
	// not from the order the challans arrived in.
	issues := []RawTransaction{
		issue("UC-9", 4, 10),
		issue("UC-2", 4, 20),
		issue("UC-5", 4, 30),
	}

	events, err := Normalize(issues, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"UC-2", "UC-5", "UC-9"}
	for i, num := range want {
		if events[i].DocumentNumber != num {
			t.Errorf("event %d: expected %s, got %s", i, num, events[i].DocumentNumber)
		}
	}
}

func TestNormalize_SumsPartnerStock(t *testing.T) {
	issues := []RawTransaction{{
		DocumentNumber: "UC-1",
		Date:           day(1),
		Lines: []RawLine{
			{PlateSize: "2x3", Quantity: 40, PartnerQuantity: 10},
			{PlateSize: "3x3", Quantity: 50},
		},
	}}

	events, err := Normalize(issues, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events[0].PlateCount != 100 {
		t.Errorf("expected plate count 100, got %d", events[0].PlateCount)
	}
}

func TestNormalize_TruncatesTimeComponent(t *testing.T) {
	issues := []RawTransaction{{
		DocumentNumber: "UC-1",
		Date:           time.Date(2025, 1, 5, 17, 30, 0, 0, time.UTC),
		Lines:          []RawLine{{Quantity: 1}},
	}}

	events, err := Normalize(issues, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !events[0].Date.Equal(day(5)) {
		t.Errorf("expected date truncated to %v, got %v", day(5), events[0].Date)
	}
}

func TestNormalize_ZeroDateFails(t *testing.T) {
	issues := []RawTransaction{{DocumentNumber: "UC-1", Lines: []RawLine{{Quantity: 5}}}}

	_, err := Normalize(issues, nil)
	if !apperror.IsInvalidTransactionData(err) {
		t.Fatalf("expected INVALID_TRANSACTION_DATA, got %v", err)
	}
}

func TestNormalize_NegativeQuantityFails(t *testing.T) {
	returns := []RawTransaction{{
		DocumentNumber: "JC-1",
		Date:           day(3),
		Lines:          []RawLine{{Quantity: -5}},
	}}

	_, err := Normalize(nil, returns)
	if !apperror.IsInvalidTransactionData(err) {
		t.Fatalf("expected INVALID_TRANSACTION_DATA, got %v", err)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	events, err := Normalize(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty event list, got %d", len(events))
	}
}
