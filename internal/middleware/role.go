package middleware

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/permissions"
	"github.com/charlesng35/kurukshetra/pkg/errors"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/metrics"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

var errSportNotFound = errors.NewNotFound("Sport not found")

// RequireMainAdmin lets only main admins through.
func RequireMainAdmin(checker *permissions.Checker) gin.HandlerFunc {
	return gate("main_admin", func(c *gin.Context, user *models.User) error {
		return checker.RequireMainAdmin(user)
	})
}

// RequireAdmin lets any admin through.
func RequireAdmin(checker *permissions.Checker) gin.HandlerFunc {
	return gate("admin", func(c *gin.Context, user *models.User) error {
		return checker.RequireAdmin(user)
	})
}

// CanManageSport checks ownership of the sport whose id is in the named path
// parameter.
func CanManageSport(checker *permissions.Checker, param string) gin.HandlerFunc {
	return gate("sport", func(c *gin.Context, user *models.User) error {
		return checker.CanManageSport(c.Request.Context(), user, c.Param(param))
	})
}

// CanManageSportByName checks ownership of the sport whose name is in the
// named path parameter.
func CanManageSportByName(checker *permissions.Checker, param string) gin.HandlerFunc {
	return gate("sport_name", func(c *gin.Context, user *models.User) error {
		return checker.CanManageSportByName(user, c.Param(param))
	})
}

func gate(name string, check func(*gin.Context, *models.User) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			metrics.AccessDecisions.WithLabelValues(name, "deny").Inc()
			response.Abort(c, errors.ErrTokenRequired)
			return
		}

		if !Allow(c, name, user, check(c, user)) {
			return
		}
		c.Next()
	}
}

// Allow records the outcome of an access check made for user. When err is
// non-nil the request is aborted with the matching client error and false is
// returned. Handlers that can only decide after loading a record use it
// directly.
func Allow(c *gin.Context, name string, user *models.User, err error) bool {
	if err != nil {
		appErr := accessError(err)
		result := "deny"
		if appErr == errors.ErrInternalServer {
			result = "error"
			logger.WithModule("access").Error("access check failed",
				zap.String("gate", name),
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
		metrics.AccessDecisions.WithLabelValues(name, result).Inc()
		response.Abort(c, appErr)
		return false
	}

	metrics.AccessDecisions.WithLabelValues(name, "allow").Inc()
	return true
}

func accessError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, permissions.ErrMainAdminRequired):
		return errors.ErrMainAdminRequired
	case stderrors.Is(err, permissions.ErrAdminRequired):
		return errors.ErrAdminRequired
	case stderrors.Is(err, permissions.ErrSportNotFound):
		return errSportNotFound
	case stderrors.Is(err, permissions.ErrSportAccessDenied):
		return errors.ErrSportAccessDenied
	default:
		return errors.ErrInternalServer
	}
}
