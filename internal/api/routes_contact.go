package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func registerContactRoutes(api *gin.RouterGroup, handler *handlers.ContactHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	contact := api.Group("/contact")
	contact.POST("", handler.Submit)

	inbox := contact.Group("", requireAuth, middleware.RequireAdmin(checker))
	{
		inbox.GET("", handler.List)
		inbox.GET("/:id", handler.Get)
		inbox.PATCH("/:id/read", handler.MarkRead)
		inbox.DELETE("/:id", handler.Delete)
	}
}
