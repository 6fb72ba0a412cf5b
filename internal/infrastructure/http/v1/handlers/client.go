package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"platedepot/internal/core/apperror"
	"platedepot/internal/domain/catalogs/client"
	"platedepot/internal/infrastructure/http/v1/dto"
)

// ClientHandler handles HTTP requests for the Client catalog.
type ClientHandler struct {
	*CatalogHandler[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest]
	service *client.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	cfg := CatalogHandlerConfig[*client.Client, dto.CreateClientRequest, dto.UpdateClientRequest]{
		Service:    service.CatalogService,
		EntityName: "client",
		MapCreateDTO: func(req dto.CreateClientRequest) *client.Client {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) *client.Client {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(c *client.Client) any {
			return dto.FromClient(c)
		},
	}

	return &ClientHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// FindByPhone handles GET /clients/by-phone/:phone
func (h *ClientHandler) FindByPhone(c *gin.Context) {
	ctx := c.Request.Context()

	phone := c.Param("phone")
	if phone == "" {
		h.Error(c, apperror.NewValidation("phone is required"))
		return
	}

	found, err := h.service.FindByPhone(ctx, phone)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromClient(found))
}

// RegisterRoutes registers client catalog routes.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/by-phone/:phone", h.FindByPhone)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/deletion-mark", h.SetDeletionMark)
}
