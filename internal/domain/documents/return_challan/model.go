// Package return_challan provides the ReturnChallan document (jama):
// plates brought back from a client's site.
package return_challan

import (
	"context"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/entity"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/billing"
)

// ReturnChallan records one return of plates from a client.
type ReturnChallan struct {
	entity.Document

	// Client returning the plates
	ClientID id.ID `db:"client_id" json:"clientId"`

	// VehicleNumber of the pickup truck
	VehicleNumber string `db:"vehicle_number" json:"vehicleNumber,omitempty"`

	// DriverName of the pickup truck
	DriverName string `db:"driver_name" json:"driverName,omitempty"`

	// DamagedPlates counts plates returned unusable; they still reduce the
	// outstanding balance but are noted for a possible damage claim
	DamagedPlates int `db:"damaged_plates" json:"damagedPlates"`

	// TotalPlates is calculated from lines, partner stock included
	TotalPlates int `db:"total_plates" json:"totalPlates"`

	// Table part: returned plates by size
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one plate size on the return challan.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	PlateSize string `db:"plate_size" json:"plateSize"`
	// Quantity is the depot's own stock coming back
	Quantity int `db:"quantity" json:"quantity"`
	// PartnerQuantity is borrowed partner stock coming back
	PartnerQuantity int `db:"partner_quantity" json:"partnerQuantity"`
}

// New creates a new return challan.
func New(clientID id.ID) *ReturnChallan {
	return &ReturnChallan{
		Document: entity.NewDocument(),
		ClientID: clientID,
		Lines:    make([]Line, 0),
	}
}

// AddLine adds a line and recalculates totals.
func (c *ReturnChallan) AddLine(plateSize string, quantity, partnerQuantity int) {
	c.Lines = append(c.Lines, Line{
		LineID:          id.New(),
		LineNo:          len(c.Lines) + 1,
		PlateSize:       plateSize,
		Quantity:        quantity,
		PartnerQuantity: partnerQuantity,
	})
	c.recalculateTotals()
}

func (c *ReturnChallan) recalculateTotals() {
	c.TotalPlates = 0
	for _, line := range c.Lines {
		c.TotalPlates += line.Quantity + line.PartnerQuantity
	}
}

// ToRawTransaction converts the challan into the shape the billing engine
// normalizer consumes.
func (c *ReturnChallan) ToRawTransaction() billing.RawTransaction {
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
func (c *ReturnChallan) Validate(ctx context.Context) error {
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

	if c.DamagedPlates < 0 {
		return apperror.NewValidation("damaged plates cannot be negative").
			WithDetail("field", "damagedPlates")
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
