package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

// Write routes share the first segment between match ids and sport names, so
// gin sees a single ":ref" wildcard there. Routes addressed by match id pass
// the admin gate here and check sport ownership in the handler once the match
// is loaded.
func registerMatchRoutes(api *gin.RouterGroup, handler *handlers.MatchHandler, checker *permissions.Checker, requireAuth gin.HandlerFunc) {
	admin := middleware.RequireAdmin(checker)

	matches := api.Group("/matches")
	{
		matches.GET("", handler.List)
		matches.GET("/id/:id", handler.Get)
		matches.GET("/:sport", handler.ListBySport)
		matches.GET("/:sport/:slug", handler.GetBySlug)

		matches.POST("", requireAuth, admin, handler.Create)
		matches.PUT("/:ref", requireAuth, admin, handler.Update)
		matches.DELETE("/:ref", requireAuth, admin, handler.Delete)
		matches.PATCH("/:id/score", requireAuth, admin, handler.ApplyScore)

		matches.POST("/:sport", requireAuth, middleware.CanManageSportByName(checker, "sport"), handler.CreateForSport)
		matches.PUT("/:ref/:slug", requireAuth, middleware.CanManageSportByName(checker, "ref"), handler.UpdateBySlug)
		matches.DELETE("/:ref/:slug", requireAuth, middleware.CanManageSportByName(checker, "ref"), handler.DeleteBySlug)
	}
}
