// Package issue_challan provides the IssueChallan document (udhar):
// plates delivered to a client's site.
package issue_challan

import (
	"context"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/entity"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/billing"
)

// IssueChallan records one delivery of plates to a client.
type IssueChallan struct {
	entity.Document

	// Client receiving the plates
	ClientID id.ID `db:"client_id" json:"clientId"`

	// SiteAddress is where the plates were delivered
	SiteAddress string `db:"site_address" json:"siteAddress,omitempty"`

	// VehicleNumber of the delivery truck
	VehicleNumber string `db:"vehicle_number" json:"vehicleNumber,omitempty"`

	// DriverName of the delivery truck
	DriverName string `db:"driver_name" json:"driverName,omitempty"`

	// TotalPlates is calculated from lines, partner stock included
	TotalPlates int `db:"total_plates" json:"totalPlates"`

	// Table part: delivered plates by size
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one plate size on the challan.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	PlateSize string `db:"plate_size" json:"plateSize"`
	// Quantity is the depot's own stock
	Quantity int `db:"quantity" json:"quantity"`
	// PartnerQuantity is borrowed partner stock delivered alongside
	PartnerQuantity int `db:"partner_quantity" json:"partnerQuantity"`
}

// New creates a new issue challan.
func New(clientID id.ID) *IssueChallan {
	return &IssueChallan{
		Document: entity.NewDocument(),
		ClientID: clientID,
		Lines:    make([]Line, 0),
	}
}

// AddLine adds a line and recalculates totals.
func (c *IssueChallan) AddLine(plateSize string, quantity, partnerQuantity int) {
	c.Lines = append(c.Lines, Line{
		LineID:          id.New(),
		LineNo:          len(c.Lines) + 1,
		PlateSize:       plateSize,
		Quantity:        quantity,
		PartnerQuantity: partnerQuantity,
	})
	c.recalculateTotals()
}

func (c *IssueChallan) recalculateTotals() {
	c.TotalPlates = 0
	for _, line := range c.Lines {
		c.TotalPlates += line.Quantity + line.PartnerQuantity
	}
}

// ToRawTransaction converts the challan into the shape the billing engine
// normalizer consumes.
func (c *IssueChallan) ToRawTransaction() billing.RawTransaction {
	lines := make([]billing.RawLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, billing.RawLine{
			PlateSize:       l.PlateSize,
			Quantity:        l.Quantity,
			PartnerQuantity: l.PartnerQuantity,
		})
	}
	return billing.RawTransaction{
		DocumentNumber: c.Number,
		Date:           c.Date,
		Lines:          lines,
	}
}

// Validate implements entity.Validatable.
func (c *IssueChallan) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if len(c.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range c.Lines {
		if line.PlateSize == "" {
			return apperror.NewValidation("plate size is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < 0 || line.PartnerQuantity < 0 {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity+line.PartnerQuantity == 0 {
			return apperror.NewValidation("line moves no plates").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
