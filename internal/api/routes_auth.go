package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/handlers"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/permissions"
)

type authRouteDeps struct {
	AuthHandler  *handlers.AuthHandler
	UserHandler  *handlers.UserHandler
	Checker      *permissions.Checker
	RequireAuth  gin.HandlerFunc
	LoginLimiter gin.HandlerFunc
}

func registerAuthRoutes(api *gin.RouterGroup, deps authRouteDeps) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", deps.LoginLimiter, deps.AuthHandler.Login)
		auth.POST("/register", deps.RequireAuth, middleware.RequireMainAdmin(deps.Checker), deps.AuthHandler.Register)
		auth.GET("/me", deps.RequireAuth, deps.AuthHandler.Me)
		auth.PUT("/password", deps.RequireAuth, deps.AuthHandler.ChangePassword)
	}

	registerUserRoutes(auth, deps.UserHandler, deps.Checker, deps.RequireAuth)
}
