// Package billing implements the rental ledger engine: it turns the
// chronological stream of plate issues (udhar) and returns (jama) for one
// client into a partitioned timeline of rent-accruing date ranges, then folds
// in service charges, worker charges, penalties, extras, discounts and
// payments to produce the amount due.
//
// The engine itself is pure: all data access happens before invocation and
// persistence happens after, in the surrounding service.
package billing

import (
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
)

// EventKind distinguishes plate movements.
type EventKind string

const (
	// KindIssue is an udhar: plates delivered to the client.
	KindIssue EventKind = "issue"
	// KindReturn is a jama: plates returned by the client.
	KindReturn EventKind = "return"
)

// RawLine is one line item of a challan as fetched from storage.
type RawLine struct {
	PlateSize string `json:"plateSize"`
	// Quantity is the depot's own stock moved on this line.
	Quantity int `json:"quantity"`
	// PartnerQuantity is borrowed partner stock moved alongside; it rents at
	// the same rate and counts toward the plate balance.
	PartnerQuantity int `json:"partnerQuantity"`
}

// RawTransaction is one issue or return challan in the shape the normalizer
// consumes. The kind is implied by which argument of Normalize it arrives in.
type RawTransaction struct {
	DocumentNumber string    `json:"documentNumber"`
	Date           time.Time `json:"date"`
	Lines          []RawLine `json:"lines"`
}

// TransactionEvent is one normalized inventory movement.
type TransactionEvent struct {
	Date time.Time `json:"date"`
	Kind EventKind `json:"kind"`
	// PlateCount is the total plates moved, partner stock included.
	PlateCount int `json:"plateCount"`
	// DocumentNumber is carried through for audit display only.
	DocumentNumber string `json:"documentNumber"`
}

// LedgerEntry is one processed event, the unit of the audit trail.
type LedgerEntry struct {
	Date           time.Time   `json:"date" db:"entry_date"`
	Kind           EventKind   `json:"kind" db:"kind"`
	PlateCount     int         `json:"plateCount" db:"plate_count"`
	DocumentNumber string      `json:"documentNumber" db:"document_number"`
	BalanceBefore  int         `json:"plateBalanceBefore" db:"balance_before"`
	BalanceAfter   int         `json:"plateBalanceAfter" db:"balance_after"`
	EffectiveDays  int         `json:"effectiveDays" db:"effective_days"`
	RentAmount     types.Money `json:"rentAmount" db:"rent_amount"`
}

// DateRange is a display view of a ledger entry with non-zero rent.
// StartDate equals the entry's date; EndDate is one day before the next
// event's date, or the bill date for the final entry.
type DateRange struct {
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	PlateBalance int         `json:"plateBalance"`
	Days         int         `json:"days"`
	Amount       types.Money `json:"amount"`
}

// ChargeLine is an ad-hoc extra charge or discount.
// Discounts are carried in a separate collection and always reduce the total;
// their Total is a non-negative magnitude.
type ChargeLine struct {
	Note      string      `json:"note" db:"note"`
	Quantity  int         `json:"quantity" db:"quantity"`
	UnitPrice types.Money `json:"unitPrice" db:"unit_price"`
	Total     types.Money `json:"total" db:"total"`
}

// NewChargeLine builds a ChargeLine with Total = Quantity × UnitPrice.
func NewChargeLine(note string, quantity int, unitPrice types.Money) ChargeLine {
	return ChargeLine{
		Note:      note,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(types.NewMoneyFromInt(int64(quantity))),
	}
}

// Payment is one itemized payment against the bill.
type Payment struct {
	Note   string      `json:"note" db:"note"`
	Amount types.Money `json:"amount" db:"amount"`
}

// BillResult is the engine's output: the full audit trail plus the computed
// scalars. Exactly one of FinalDue and BalanceCarryForward is non-zero.
type BillResult struct {
	ClientID   id.ID     `json:"clientId"`
	BillNumber string    `json:"billNumber"`
	BillDate   time.Time `json:"billDate"`

	Ledger     []LedgerEntry `json:"ledger"`
	DateRanges []DateRange   `json:"dateRanges"`
	Extras     []ChargeLine  `json:"extras"`
	Discounts  []ChargeLine  `json:"discounts"`
	Payments   []Payment     `json:"payments"`

	TotalIssued   int `json:"totalIssued"`
	TotalReturned int `json:"totalReturned"`
	LostPlates    int `json:"lostPlates"`

	TotalRent           types.Money `json:"totalRent"`
	ServiceCharge       types.Money `json:"serviceCharge"`
	WorkerCharge        types.Money `json:"workerCharge"`
	LostPlatePenalty    types.Money `json:"lostPlatePenalty"`
	CoreTotal           types.Money `json:"coreTotal"`
	ExtraChargesTotal   types.Money `json:"extraChargesTotal"`
	DiscountsTotal      types.Money `json:"discountsTotal"`
	AdjustedTotal       types.Money `json:"adjustedTotal"`
	AdvancePaid         types.Money `json:"advancePaid"`
	PaymentsTotal       types.Money `json:"paymentsTotal"`
	FinalDue            types.Money `json:"finalDue"`
	BalanceCarryForward types.Money `json:"balanceCarryForward"`

	// BalanceClamped is raised when returns exceeded cumulative issues and the
	// running balance was clamped at zero. It usually means a return was
	// recorded for plates never issued, so it is surfaced as a warning rather
	// than silently-correct output.
	BalanceClamped bool     `json:"balanceClamped"`
	Warnings       []string `json:"warnings,omitempty"`
}
