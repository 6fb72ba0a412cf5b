package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/domain/reports"
	"platedepot/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetOutstanding handles GET /reports/outstanding
func (h *ReportsHandler) GetOutstanding(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OutstandingReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	filter := reports.OutstandingReportFilter{
		AsOf:        req.AsOf,
		ExcludeZero: req.ExcludeZero == nil || *req.ExcludeZero,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}

	for _, cStr := range req.ClientIDs {
		cID, err := id.Parse(cStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid clientId format"))
			return
		}
		filter.ClientIDs = append(filter.ClientIDs, cID)
	}

	report, err := h.service.GetOutstanding(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOutstandingReport(report))
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/outstanding", h.GetOutstanding)
}
