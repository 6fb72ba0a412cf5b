// Package reports provides report generation services.
package reports

import (
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
)

// OutstandingReportFilter defines filter for the outstanding plates report.
type OutstandingReportFilter struct {
	// AsOf - report date (defaults to now). Challans dated after it are
	// ignored.
	AsOf *time.Time

	// ClientIDs restricts the report to specific clients.
	ClientIDs []id.ID

	// ExcludeZero drops clients whose plate balance is zero.
	ExcludeZero bool

	// Pagination
	Limit  int
	Offset int
}

// OutstandingReportItem is one client's row in the outstanding report.
type OutstandingReportItem struct {
	ClientID   id.ID  `json:"clientId" db:"client_id"`
	ClientCode string `json:"clientCode" db:"client_code"`
	ClientName string `json:"clientName" db:"client_name"`

	TotalIssued   int `json:"totalIssued" db:"total_issued"`
	TotalReturned int `json:"totalReturned" db:"total_returned"`
	Outstanding   int `json:"outstanding" db:"outstanding"`

	// LastMovement is the date of the client's most recent challan, nil
	// when the client has no movements in the window.
	LastMovement *time.Time `json:"lastMovement,omitempty" db:"last_movement"`

	// UnpaidDue sums FinalDue across the client's bills.
	UnpaidDue types.Money `json:"unpaidDue" db:"unpaid_due"`
}

// OutstandingReport is the full outstanding plates report.
type OutstandingReport struct {
	AsOf       time.Time               `json:"asOf"`
	Items      []OutstandingReportItem `json:"items"`
	TotalItems int                     `json:"totalItems"`

	TotalOutstanding int `json:"totalOutstanding"`
}
