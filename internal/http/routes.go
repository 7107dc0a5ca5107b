package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require authentication.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes to the given router group.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// ShipmentRoutes groups the rating, labeling, tracking, and address routes.
type ShipmentRoutes struct {
	handler *Handler
}

// NewShipmentRoutes creates the shipment route group.
func NewShipmentRoutes(handler *Handler) *ShipmentRoutes {
	return &ShipmentRoutes{handler: handler}
}

// RegisterPublicRoutes registers the read-only shipment routes: rating,
// packing preview, tracking, and address validation.
func (r *ShipmentRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/rates", r.handler.GetRates)
	rg.POST("/pack", r.handler.PreviewPacking)
	rg.GET("/track/:trackingNumber", r.handler.Track)
	rg.POST("/addresses/validate", r.handler.ValidateAddress)
}

// RegisterProtectedRoutes registers the state-changing shipment routes:
// label purchase and shipment cancellation.
func (r *ShipmentRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.POST("/labels", r.handler.CreateLabel)
	rg.DELETE("/shipments/:trackingNumber", r.handler.CancelShipment)
}

// AdminRoutes groups the box catalog administration routes.
type AdminRoutes struct {
	handler *BoxCatalogHandler
}

// NewAdminRoutes creates the admin route group.
func NewAdminRoutes(handler *BoxCatalogHandler) *AdminRoutes {
	return &AdminRoutes{handler: handler}
}

// RegisterProtectedRoutes registers catalog administration routes.
func (r *AdminRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/admin/boxes", r.handler.GetBoxes)
	rg.PUT("/admin/boxes", r.handler.UpdateBoxes)
}
