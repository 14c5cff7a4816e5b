package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/models"
	appErrors "github.com/charlesng35/kurukshetra/pkg/errors"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// requestContext safely returns the request context with a background fallback for tests.
func requestContext(c *gin.Context) context.Context {
	if c == nil {
		return context.Background()
	}
	if req := c.Request; req != nil {
		return req.Context()
	}
	return context.Background()
}

// currentUser returns the authenticated user, writing a 401 when the route was
// mounted without authentication.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrTokenRequired)
		return nil, false
	}
	return user, true
}

// fail writes err to the client. Unexpected errors are logged with the route
// and replaced by the generic server error.
func fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.WithModule("handlers").Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, appErr)
}

// pathParam returns the first non-empty path parameter among names. Routes
// that share a wildcard position with differently named siblings register
// under a common name.
func pathParam(c *gin.Context, names ...string) string {
	for _, name := range names {
		if value := c.Param(name); value != "" {
			return value
		}
	}
	return ""
}
