// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// EntityRouteHandler defines the interface for archivable entity handlers.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Archive(c *gin.Context)
	Unarchive(c *gin.Context)
}

// RegisterEntityRoutes registers standard CRUD plus archive-transition routes
// for one entity type. This eliminates the need to manually wire up routes
// for each entity.
//
// Usage:
//
//	handler := handlers.NewCompanyHandler(baseHandler, service, repo)
//	RegisterEntityRoutes(api.Group("/companies"), handler)
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	group.POST("/:id/archive", handler.Archive)
	group.POST("/:id/unarchive", handler.Unarchive)
}
