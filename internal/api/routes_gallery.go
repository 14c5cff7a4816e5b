package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func registerGalleryRoutes(api *gin.RouterGroup, handler *handlers.GalleryHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	gallery := api.Group("/gallery")
	{
		gallery.GET("", handler.List)
		gallery.GET("/:id", handler.Get)

		admin := gallery.Group("", requireAuth, middleware.RequireAdmin(checker))
		admin.POST("", handler.Create)
		admin.PUT("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
}
