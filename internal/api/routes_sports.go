package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

func registerSportRoutes(api *gin.RouterGroup, handler *handlers.SportHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	sports := api.Group("/sports")
	{
		sports.GET("", handler.List)
		sports.GET("/upcoming", handler.Upcoming)
		sports.GET("/type/:type", handler.ListByType)
		sports.GET("/slug/:slug", handler.GetBySlug)
		sports.GET("/:id", handler.Get)

		sports.POST("", requireAuth, middleware.RequireAdmin(checker), handler.Create)
		sports.PUT("/:id", requireAuth, middleware.CanManageSport(checker, "id"), handler.Update)
		sports.DELETE("/:id", requireAuth, middleware.CanManageSport(checker, "id"), handler.Delete)
		sports.PUT("/name/:sportName/status", requireAuth, middleware.CanManageSportByName(checker, "sportName"), handler.UpdateStatusByName)
	}
}
