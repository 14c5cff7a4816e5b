package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func registerEventRoutes(api *gin.RouterGroup, handler *handlers.EventHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	events := api.Group("/events")
	{
		events.GET("", handler.List)
		events.GET("/:id", handler.Get)

		admin := events.Group("", requireAuth, middleware.RequireAdmin(checker))
		admin.POST("", handler.Create)
		admin.PUT("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
	}
}
