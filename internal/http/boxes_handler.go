package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shipquote/rate-service/internal/domain/dto"
	"github.com/shipquote/rate-service/internal/middleware"
	"github.com/shipquote/rate-service/internal/packing"
	"github.com/shipquote/rate-service/internal/service"
)

// BoxCatalogHandler provides HTTP handlers for box catalog administration.
type BoxCatalogHandler struct {
	catalogs service.BoxCatalogService
	logging  service.LoggingService
}

// NewBoxCatalogHandler creates a new BoxCatalogHandler instance.
func NewBoxCatalogHandler(catalogs service.BoxCatalogService, logging service.LoggingService) *BoxCatalogHandler {
	return &BoxCatalogHandler{
		catalogs: catalogs,
		logging:  logging,
	}
}

// GetBoxes handles GET /api/admin/boxes requests.
//
// @Summary      Get the active box catalog
// @Description  Returns the stored active catalog, or the built-in catalog when none has been stored.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Active catalog"
// @Security     BearerAuth
// @Router       /api/admin/boxes [get]
func (h *BoxCatalogHandler) GetBoxes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	config, err := h.catalogs.ActiveConfig(c.Request.Context())
	if err != nil && err != service.ErrRepositoryNotConfigured {
		builder.Error(http.StatusInternalServerError, "Failed to load box catalog", err)
		return
	}

	if config == nil || err == service.ErrRepositoryNotConfigured {
		// No stored configuration; report the built-in catalog.
		builder.SuccessOK(gin.H{
			"boxes":   packing.DefaultBoxes,
			"builtin": true,
		})
		return
	}

	builder.SuccessOK(config)
}

// UpdateBoxes handles PUT /api/admin/boxes requests.
//
// @Summary      Replace the active box catalog
// @Description  Stores a new catalog configuration and activates it. The previous configuration is kept deactivated for audit.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateBoxCatalogRequest true "New catalog"
// @Success      201 {object} dto.SuccessResponse "Stored configuration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Security     BearerAuth
// @Router       /api/admin/boxes [put]
func (h *BoxCatalogHandler) UpdateBoxes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateBoxCatalogRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		if id, exists := c.Get("client_id"); exists {
			createdBy, _ = id.(string)
		}
	}

	config, err := h.catalogs.ReplaceActive(c.Request.Context(), req.Boxes, createdBy)
	if err != nil {
		if err == service.ErrRepositoryNotConfigured {
			builder.Error(http.StatusNotImplemented, "Box catalog storage is not enabled", err)
			return
		}
		builder.Error(http.StatusInternalServerError, "Failed to store box catalog", err)
		return
	}

	middleware.AuditLog(h.logging, c, "update_box_catalog", "Box catalog replaced", map[string]interface{}{
		"version": config.Version,
		"boxes":   len(config.Boxes),
	})

	builder.SuccessCreated(config)
}
