package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/domain/documents/bill"
	"platedepot/internal/infrastructure/http/v1/dto"
	"platedepot/internal/infrastructure/render"
	"platedepot/internal/infrastructure/storage/postgres"
)

// BillingHandler handles HTTP requests for billing: previews, bill
// generation and invoice rendering.
type BillingHandler struct {
	*BaseHandler
	service   *bill.Service
	clientSvc *client.Service
	audit     *postgres.AuditService
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(base *BaseHandler, service *bill.Service, clientSvc *client.Service, audit *postgres.AuditService) *BillingHandler {
	return &BillingHandler{
		BaseHandler: base,
		service:     service,
		clientSvc:   clientSvc,
		audit:       audit,
	}
}

// Preview handles POST /billing/preview - computes a bill without persisting it.
func (h *BillingHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	genReq, err := req.ToGenerateRequest()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	result, err := h.service.Preview(ctx, genReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Generate handles POST /billing/bills - computes and persists a bill.
func (h *BillingHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	genReq, err := req.ToGenerateRequest()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	doc, err := h.service.Generate(ctx, genReq)
	if err != nil {
		h.Error(c, err)
		return
	}

	if h.audit != nil {
		_ = h.audit.LogChange(ctx, "bill", doc.ID, postgres.AuditActionCreate, map[string]any{"after": doc})
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", doc)
	c.JSON(http.StatusCreated, doc)
}

// List handles GET /billing/bills
func (h *BillingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := bill.ListFilter{}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.UnpaidOnly = c.Query("unpaidOnly") == "true"

	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := id.Parse(clientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid clientId format"))
			return
		}
		filter.ClientID = &parsed
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromBill(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /billing/bills/:id - full bill with ledger and charge lines.
func (h *BillingHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, billID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /billing/bills/:id - soft delete.
func (h *BillingHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, billID); err != nil {
		h.Error(c, err)
		return
	}

	if h.audit != nil {
		_ = h.audit.LogChange(ctx, "bill", billID, postgres.AuditActionDelete, nil)
	}

	c.Status(http.StatusNoContent)
}

// DownloadPDF handles GET /billing/bills/:id/pdf - renders the invoice.
func (h *BillingHandler) DownloadPDF(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, billID)
	if err != nil {
		h.Error(c, err)
		return
	}

	billClient, err := h.clientSvc.GetByID(ctx, doc.ClientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	pdfBytes, err := render.BuildInvoicePDF(doc, billClient)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	filename := fmt.Sprintf("%s.pdf", doc.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// History handles GET /billing/bills/:id/history
func (h *BillingHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.audit.GetEntityHistory(ctx, "bill", billID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// RegisterRoutes registers billing routes.
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/preview", h.Preview)
	rg.GET("/bills", h.List)
	rg.POST("/bills", h.Generate)
	rg.GET("/bills/:id", h.Get)
	rg.DELETE("/bills/:id", h.Delete)
	rg.GET("/bills/:id/pdf", h.DownloadPDF)
	rg.GET("/bills/:id/history", h.History)
}
