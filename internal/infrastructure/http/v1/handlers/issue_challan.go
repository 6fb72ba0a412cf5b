package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/documents/issue_challan"
	"platedepot/internal/infrastructure/http/v1/dto"
	"platedepot/internal/infrastructure/storage/postgres"
)

// IssueChallanHandler handles HTTP requests for issue challan documents.
type IssueChallanHandler struct {
	*BaseHandler
	service *issue_challan.Service
	audit   *postgres.AuditService
}

// NewIssueChallanHandler creates a new issue challan handler.
func NewIssueChallanHandler(base *BaseHandler, service *issue_challan.Service, audit *postgres.AuditService) *IssueChallanHandler {
	return &IssueChallanHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// List handles GET /issue-challans
func (h *IssueChallanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := issue_challan.ListFilter{}
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
		items[i] = dto.FromIssueChallan(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /issue-challans/:id
func (h *IssueChallanHandler) Get(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.FromIssueChallan(doc))
}

// Create handles POST /issue-challans
func (h *IssueChallanHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateIssueChallanRequest
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

	response := dto.FromIssueChallan(doc)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// Update handles PUT /issue-challans/:id
func (h *IssueChallanHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateIssueChallanRequest
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

	response := dto.FromIssueChallan(doc)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /issue-challans/:id - soft delete.
func (h *IssueChallanHandler) Delete(c *gin.Context) {
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

// History handles GET /issue-challans/:id/history
func (h *IssueChallanHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.audit.GetEntityHistory(ctx, "issue_challan", docID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *IssueChallanHandler) logAudit(c *gin.Context, docID id.ID, action postgres.AuditAction, changes map[string]any) {
	if h.audit == nil {
		return
	}
	// Audit failures must not break the request.
	_ = h.audit.LogChange(c.Request.Context(), "issue_challan", docID, action, changes)
}

// RegisterRoutes registers issue challan routes.
func (h *IssueChallanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/history", h.History)
}
