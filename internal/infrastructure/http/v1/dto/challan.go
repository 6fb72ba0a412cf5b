package dto

import (
	"time"

	"platedepot/internal/core/id"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/domain/documents/return_challan"
)

// --- Shared line DTO ---

// ChallanLineRequest is one plate size row on a challan.
type ChallanLineRequest struct {
	PlateSize       string `json:"plateSize" binding:"required"`
	Quantity        int    `json:"quantity" binding:"min=0"`
	PartnerQuantity int    `json:"partnerQuantity" binding:"min=0"`
}

// ChallanLineResponse mirrors a stored challan line.
type ChallanLineResponse struct {
	LineNo          int    `json:"lineNo"`
	PlateSize       string `json:"plateSize"`
	Quantity        int    `json:"quantity"`
	PartnerQuantity int    `json:"partnerQuantity"`
}

// --- Issue challan ---

type CreateIssueChallanRequest struct {
	Number        string               `json:"number,omitempty"`
	Date          time.Time            `json:"date" binding:"required"`
	ClientID      string               `json:"clientId" binding:"required"`
	SiteAddress   string               `json:"siteAddress,omitempty"`
	VehicleNumber string               `json:"vehicleNumber,omitempty"`
	DriverName    string               `json:"driverName,omitempty"`
	Comment       string               `json:"comment,omitempty"`
	Lines         []ChallanLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r *CreateIssueChallanRequest) ToEntity() (*issue_challan.IssueChallan, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, err
	}

	doc := issue_challan.New(clientID)
	doc.Number = r.Number
	doc.Date = r.Date
	doc.SiteAddress = r.SiteAddress
	doc.VehicleNumber = r.VehicleNumber
	doc.DriverName = r.DriverName
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		doc.AddLine(line.PlateSize, line.Quantity, line.PartnerQuantity)
	}

	return doc, nil
}

type UpdateIssueChallanRequest struct {
	Number        *string              `json:"number,omitempty"`
	Date          *time.Time           `json:"date,omitempty"`
	SiteAddress   *string              `json:"siteAddress,omitempty"`
	VehicleNumber *string              `json:"vehicleNumber,omitempty"`
	DriverName    *string              `json:"driverName,omitempty"`
	Comment       *string              `json:"comment,omitempty"`
	Lines         []ChallanLineRequest `json:"lines,omitempty"`
	Version       int                  `json:"version" binding:"required"`
}

func (r *UpdateIssueChallanRequest) ApplyTo(doc *issue_challan.IssueChallan) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.SiteAddress != nil {
		doc.SiteAddress = *r.SiteAddress
	}
	if r.VehicleNumber != nil {
		doc.VehicleNumber = *r.VehicleNumber
	}
	if r.DriverName != nil {
		doc.DriverName = *r.DriverName
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, line := range r.Lines {
			doc.AddLine(line.PlateSize, line.Quantity, line.PartnerQuantity)
		}
	}
	doc.Version = r.Version
}

// IssueChallanResponse is the response body for an issue challan.
type IssueChallanResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	ClientID      string                `json:"clientId"`
	SiteAddress   string                `json:"siteAddress,omitempty"`
	VehicleNumber string                `json:"vehicleNumber,omitempty"`
	DriverName    string                `json:"driverName,omitempty"`
	Comment       string                `json:"comment,omitempty"`
	TotalPlates   int                   `json:"totalPlates"`
	Lines         []ChallanLineResponse `json:"lines"`
	DeletionMark  bool                  `json:"deletionMark"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func FromIssueChallan(doc *issue_challan.IssueChallan) *IssueChallanResponse {
	resp := &IssueChallanResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		ClientID:      doc.ClientID.String(),
		SiteAddress:   doc.SiteAddress,
		VehicleNumber: doc.VehicleNumber,
		DriverName:    doc.DriverName,
		Comment:       doc.Comment,
		TotalPlates:   doc.TotalPlates,
		Lines:         make([]ChallanLineResponse, 0, len(doc.Lines)),
		DeletionMark:  doc.DeletionMark,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, ChallanLineResponse{
			LineNo:          line.LineNo,
			PlateSize:       line.PlateSize,
			Quantity:        line.Quantity,
			PartnerQuantity: line.PartnerQuantity,
		})
	}
	return resp
}

// --- Return challan ---

type CreateReturnChallanRequest struct {
	Number        string               `json:"number,omitempty"`
	Date          time.Time            `json:"date" binding:"required"`
	ClientID      string               `json:"clientId" binding:"required"`
	VehicleNumber string               `json:"vehicleNumber,omitempty"`
	DriverName    string               `json:"driverName,omitempty"`
	DamagedPlates int                  `json:"damagedPlates,omitempty"`
	Comment       string               `json:"comment,omitempty"`
	Lines         []ChallanLineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r *CreateReturnChallanRequest) ToEntity() (*return_challan.ReturnChallan, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return nil, err
	}

	doc := return_challan.New(clientID)
	doc.Number = r.Number
	doc.Date = r.Date
	doc.VehicleNumber = r.VehicleNumber
	doc.DriverName = r.DriverName
	doc.DamagedPlates = r.DamagedPlates
	doc.Comment = r.Comment

	for _, line := range r.Lines {
		doc.AddLine(line.PlateSize, line.Quantity, line.PartnerQuantity)
	}

	return doc, nil
}

type UpdateReturnChallanRequest struct {
	Number        *string              `json:"number,omitempty"`
	Date          *time.Time           `json:"date,omitempty"`
	VehicleNumber *string              `json:"vehicleNumber,omitempty"`
	DriverName    *string              `json:"driverName,omitempty"`
	DamagedPlates *int                 `json:"damagedPlates,omitempty"`
	Comment       *string              `json:"comment,omitempty"`
	Lines         []ChallanLineRequest `json:"lines,omitempty"`
	Version       int                  `json:"version" binding:"required"`
}

func (r *UpdateReturnChallanRequest) ApplyTo(doc *return_challan.ReturnChallan) {
	if r.Number != nil {
		doc.Number = *r.Number
	}
	if r.Date != nil {
		doc.Date = *r.Date
	}
	if r.VehicleNumber != nil {
		doc.VehicleNumber = *r.VehicleNumber
	}
	if r.DriverName != nil {
		doc.DriverName = *r.DriverName
	}
	if r.DamagedPlates != nil {
		doc.DamagedPlates = *r.DamagedPlates
	}
	if r.Comment != nil {
		doc.Comment = *r.Comment
	}
	if r.Lines != nil {
		doc.Lines = doc.Lines[:0]
		for _, line := range r.Lines {
			doc.AddLine(line.PlateSize, line.Quantity, line.PartnerQuantity)
		}
	}
	doc.Version = r.Version
}

// ReturnChallanResponse is the response body for a return challan.
type ReturnChallanResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Date          time.Time             `json:"date"`
	ClientID      string                `json:"clientId"`
	VehicleNumber string                `json:"vehicleNumber,omitempty"`
	DriverName    string                `json:"driverName,omitempty"`
	DamagedPlates int                   `json:"damagedPlates"`
	Comment       string                `json:"comment,omitempty"`
	TotalPlates   int                   `json:"totalPlates"`
	Lines         []ChallanLineResponse `json:"lines"`
	DeletionMark  bool                  `json:"deletionMark"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func FromReturnChallan(doc *return_challan.ReturnChallan) *ReturnChallanResponse {
	resp := &ReturnChallanResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		ClientID:      doc.ClientID.String(),
		VehicleNumber: doc.VehicleNumber,
		DriverName:    doc.DriverName,
		DamagedPlates: doc.DamagedPlates,
		Comment:       doc.Comment,
		TotalPlates:   doc.TotalPlates,
		Lines:         make([]ChallanLineResponse, 0, len(doc.Lines)),
		DeletionMark:  doc.DeletionMark,
		Version:       doc.Version,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	for _, line := range doc.Lines {
		resp.Lines = append(resp.Lines, ChallanLineResponse{
			LineNo:          line.LineNo,
			PlateSize:       line.PlateSize,
			Quantity:        line.Quantity,
			PartnerQuantity: line.PartnerQuantity,
		})
	}
	return resp
}
