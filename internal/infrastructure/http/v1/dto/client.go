package dto

import (
	"platedepot/internal/core/entity"
	"platedepot/internal/core/types"
	"platedepot/internal/domain/catalogs/client"
)

// --- Request DTOs ---

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	SiteAddress   *string `json:"siteAddress"`
	ContactPerson *string `json:"contactPerson"`
	Comment       *string `json:"comment"`

	DailyRate            types.Money       `json:"dailyRate"`
	ServiceChargeMode    string            `json:"serviceChargeMode"`
	ServiceChargeRate    types.Money       `json:"serviceChargeRate"`
	ServiceChargePercent types.Money       `json:"serviceChargePercent"`
	ServiceChargeFixed   types.Money       `json:"serviceChargeFixed"`
	WorkerCharge         types.Money       `json:"workerCharge"`
	LostPlatePenalty     types.Money       `json:"lostPlatePenalty"`
	ReturnDayPolicy      string            `json:"returnDayPolicy"`
	Attributes           entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.New(r.Code, r.Name, r.DailyRate)
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.SiteAddress = r.SiteAddress
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	if r.ServiceChargeMode != "" {
		c.ServiceChargeMode = r.ServiceChargeMode
	}
	c.ServiceChargeRate = r.ServiceChargeRate
	c.ServiceChargePercent = r.ServiceChargePercent
	c.ServiceChargeFixed = r.ServiceChargeFixed
	c.WorkerCharge = r.WorkerCharge
	c.LostPlatePenalty = r.LostPlatePenalty
	if r.ReturnDayPolicy != "" {
		c.ReturnDayPolicy = r.ReturnDayPolicy
	}
	c.Attributes = r.Attributes
	return c
}

// UpdateClientRequest is the request body for updating a client.
type UpdateClientRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	SiteAddress   *string `json:"siteAddress"`
	ContactPerson *string `json:"contactPerson"`
	Comment       *string `json:"comment"`

	DailyRate            types.Money       `json:"dailyRate"`
	ServiceChargeMode    string            `json:"serviceChargeMode"`
	ServiceChargeRate    types.Money       `json:"serviceChargeRate"`
	ServiceChargePercent types.Money       `json:"serviceChargePercent"`
	ServiceChargeFixed   types.Money       `json:"serviceChargeFixed"`
	WorkerCharge         types.Money       `json:"workerCharge"`
	LostPlatePenalty     types.Money       `json:"lostPlatePenalty"`
	ReturnDayPolicy      string            `json:"returnDayPolicy"`
	Attributes           entity.Attributes `json:"attributes"`
	Version              int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	c.Code = r.Code
	c.Name = r.Name
	c.Phone = r.Phone
	c.Email = r.Email
	c.Address = r.Address
	c.SiteAddress = r.SiteAddress
	c.ContactPerson = r.ContactPerson
	c.Comment = r.Comment
	c.DailyRate = r.DailyRate
	c.ServiceChargeMode = r.ServiceChargeMode
	c.ServiceChargePercent = r.ServiceChargePercent
	c.ServiceChargeRate = r.ServiceChargeRate
	c.ServiceChargeFixed = r.ServiceChargeFixed
	c.WorkerCharge = r.WorkerCharge
	c.LostPlatePenalty = r.LostPlatePenalty
	c.ReturnDayPolicy = r.ReturnDayPolicy
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// ClientResponse is the response body for a client.
type ClientResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	SiteAddress   *string `json:"siteAddress,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Comment       *string `json:"comment,omitempty"`

	DailyRate            types.Money `json:"dailyRate"`
	ServiceChargeMode    string      `json:"serviceChargeMode"`
	ServiceChargeRate    types.Money `json:"serviceChargeRate"`
	ServiceChargePercent types.Money `json:"serviceChargePercent"`
	ServiceChargeFixed   types.Money `json:"serviceChargeFixed"`
	WorkerCharge         types.Money `json:"workerCharge"`
	LostPlatePenalty     types.Money `json:"lostPlatePenalty"`
	ReturnDayPolicy      string      `json:"returnDayPolicy"`

	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromClient creates response DTO from domain entity.
func FromClient(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:                   c.ID.String(),
		Code:                 c.Code,
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		Address:              c.Address,
		SiteAddress:          c.SiteAddress,
		ContactPerson:        c.ContactPerson,
		Comment:              c.Comment,
		DailyRate:            c.DailyRate,
		ServiceChargeMode:    c.ServiceChargeMode,
		ServiceChargeRate:    c.ServiceChargeRate,
		ServiceChargePercent: c.ServiceChargePercent,
		ServiceChargeFixed:   c.ServiceChargeFixed,
		WorkerCharge:         c.WorkerCharge,
		LostPlatePenalty:     c.LostPlatePenalty,
		ReturnDayPolicy:      c.ReturnDayPolicy,
		DeletionMark:         c.DeletionMark,
		Version:              c.Version,
		Attributes:           c.Attributes,
	}
}
