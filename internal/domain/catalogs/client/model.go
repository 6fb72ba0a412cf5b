// Package client provides the Client catalog: the parties renting
// centering plates from the depot.
package client

import (
	"context"
	"regexp"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/entity"
	"platedepot/internal/core/types"
	"platedepot/internal/domain/billing"
)

// Pre-compiled regex patterns for validation
var (
	phoneRE = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,14}$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Client represents a rental client.
// Each client carries its negotiated rates; a billing run snapshots them
// into the bill, so later rate changes never rewrite old bills.
type Client struct {
	entity.Catalog

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the billing address
	Address *string `db:"address" json:"address,omitempty"`

	// SiteAddress is the construction site plates are delivered to
	SiteAddress *string `db:"site_address" json:"siteAddress,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`

	// --- Negotiated rates ---

	DailyRate            types.Money `db:"daily_rate" json:"dailyRate"`
	ServiceChargeMode    string      `db:"service_charge_mode" json:"serviceChargeMode"`
	ServiceChargeRate    types.Money `db:"service_charge_rate" json:"serviceChargeRate"`
	ServiceChargePercent types.Money `db:"service_charge_percent" json:"serviceChargePercent"`
	ServiceChargeFixed   types.Money `db:"service_charge_fixed" json:"serviceChargeFixed"`
	WorkerCharge         types.Money `db:"worker_charge" json:"workerCharge"`
	LostPlatePenalty     types.Money `db:"lost_plate_penalty" json:"lostPlatePenalty"`
	ReturnDayPolicy      string      `db:"return_day_policy" json:"returnDayPolicy"`
}

// New creates a new Client with required fields.
func New(code, name string, dailyRate types.Money) *Client {
	return &Client{
		Catalog:           entity.NewCatalog(code, name),
		DailyRate:         dailyRate,
		ServiceChargeMode: string(billing.ServiceDisabled),
		ReturnDayPolicy:   string(billing.ReturnSameDay),
	}
}

// RateConfig assembles the client's negotiated rates into a billing config.
func (c *Client) RateConfig() billing.RateConfig {
	return billing.RateConfig{
		DailyRate:            c.DailyRate,
		ServiceChargeMode:    billing.ServiceChargeMode(c.ServiceChargeMode),
		ServiceChargeRate:    c.ServiceChargeRate,
		ServiceChargePercent: c.ServiceChargePercent,
		ServiceChargeFixed:   c.ServiceChargeFixed,
		WorkerCharge:         c.WorkerCharge,
		LostPlatePenalty:     c.LostPlatePenalty,
		ReturnDayPolicy:      billing.ReturnDayPolicy(c.ReturnDayPolicy),
	}
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Phone != nil && *c.Phone != "" && !phoneRE.MatchString(*c.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	// The rate columns must form a valid billing config at all times, so a
	// billing run never fails on a catalog problem.
	if err := c.RateConfig().Validate(); err != nil {
		return err
	}

	return nil
}
