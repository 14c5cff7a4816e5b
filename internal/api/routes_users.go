package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func registerUserRoutes(auth *gin.RouterGroup, handler *handlers.UserHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	users := auth.Group("/users")
	users.Use(requireAuth, middleware.RequireMainAdmin(checker))
	{
		users.GET("", handler.List)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}
