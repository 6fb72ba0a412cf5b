package dto

import (
	"time"

	"platedepot/internal/domain/reports"
)

// OutstandingReportRequest holds query parameters for the outstanding-plates report.
type OutstandingReportRequest struct {
	AsOf        *time.Time `form:"asOf" time_format:"2006-01-02"`
	ClientIDs   []string   `form:"clientId"`
	ExcludeZero *bool      `form:"excludeZero"`
	Limit       int        `form:"limit"`
	Offset      int        `form:"offset"`
}

// OutstandingReportItemResponse is one client row of the report.
type OutstandingReportItemResponse struct {
	ClientID      string     `json:"clientId"`
	ClientCode    string     `json:"clientCode"`
	ClientName    string     `json:"clientName"`
	TotalIssued   int        `json:"totalIssued"`
	TotalReturned int        `json:"totalReturned"`
	Outstanding   int        `json:"outstanding"`
	LastMovement  *time.Time `json:"lastMovement,omitempty"`
	UnpaidDue     string     `json:"unpaidDue"`
}

// OutstandingReportResponse is the full report payload.
type OutstandingReportResponse struct {
	AsOf             time.Time                       `json:"asOf"`
	Items            []OutstandingReportItemResponse `json:"items"`
	TotalItems       int                             `json:"totalItems"`
	TotalOutstanding int                             `json:"totalOutstanding"`
}

// FromOutstandingReport maps the domain report to its response DTO.
func FromOutstandingReport(r *reports.OutstandingReport) OutstandingReportResponse {
	items := make([]OutstandingReportItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = OutstandingReportItemResponse{
			ClientID:      item.ClientID.String(),
			ClientCode:    item.ClientCode,
			ClientName:    item.ClientName,
			TotalIssued:   item.TotalIssued,
			TotalReturned: item.TotalReturned,
			Outstanding:   item.Outstanding,
			LastMovement:  item.LastMovement,
			UnpaidDue:     item.UnpaidDue.StringFixed(2),
		}
	}

	return OutstandingReportResponse{
		AsOf:             r.AsOf,
		Items:            items,
		TotalItems:       r.TotalItems,
		TotalOutstanding: r.TotalOutstanding,
	}
}
