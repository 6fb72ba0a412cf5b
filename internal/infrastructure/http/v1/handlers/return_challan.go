package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/documents/return_challan"
	"platedepot/internal/infrastructure/http/v1/dto"
	"platedepot/internal/infrastructure/storage/postgres"
)

// ReturnChallanHandler handles HTTP requests for return challan documents.
type ReturnChallanHandler struct {
	*BaseHandler
	service *return_challan.Service
	audit   *postgres.AuditService
}

// NewReturnChallanHandler creates a new return challan handler.
func NewReturnChallanHandler(base *BaseHandler, service *return_challan.Service, audit *postgres.AuditService) *ReturnChallanHandler {
	return &ReturnChallanHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// List handles GET /return-challans
func (h *ReturnChallanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := return_challan.ListFilter{}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

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
		items[i] = dto.FromReturnChallan(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /return-challans/:id
func (h *ReturnChallanHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReturnChallan(doc))
}

// Create handles POST /return-challans
func (h *ReturnChallanHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateReturnChallanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, doc.ID, postgres.AuditActionCreate, map[string]any{"after": doc})

	response := dto.FromReturnChallan(doc)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /return-challans/:id
func (h *ReturnChallanHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateReturnChallanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	before := postgres.StructToMap(doc)
	req.ApplyTo(doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, doc.ID, postgres.AuditActionUpdate, postgres.Diff(before, postgres.StructToMap(doc)))

	response := dto.FromReturnChallan(doc)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /return-challans/:id - soft delete.
func (h *ReturnChallanHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.logAudit(c, docID, postgres.AuditActionDelete, nil)

	c.Status(http.StatusNoContent)
}

// History handles GET /return-challans/:id/history
func (h *ReturnChallanHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.audit.GetEntityHistory(ctx, "return_challan", docID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *ReturnChallanHandler) logAudit(c *gin.Context, docID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	_ = h.audit.LogChange(c.Request.Context(), "return_challan", docID, action, changes)
}

// RegisterRoutes registers return challan routes.
func (h *ReturnChallanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/history", h.History)
}
