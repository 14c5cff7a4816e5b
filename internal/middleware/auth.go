package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/pkg/errors"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/metrics"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

const (
	CtxUserKey   = "authUser"
	CtxUserIDKey = "userID"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLoader loads the account behind a verified token. A missing account is
// reported as an error with a 404 status.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate resolves the bearer token to an active user and stores it in
// the request context. Missing tokens and unknown or inactive users yield 401;
// tokens that fail verification yield 403.
func Authenticate(tokens TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			metrics.AccessDecisions.WithLabelValues("authenticate", "deny").Inc()
			response.Abort(c, errors.ErrTokenRequired)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			metrics.AccessDecisions.WithLabelValues("authenticate", "deny").Inc()
			response.Abort(c, errors.ErrInvalidToken)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.IsStatus(err, http.StatusNotFound) {
			metrics.AccessDecisions.WithLabelValues("authenticate", "error").Inc()
			logger.WithModule("auth").Error("load authenticated user",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			response.Abort(c, errors.ErrInternalServer)
			return
		}
		if user == nil || !user.IsActive {
			metrics.AccessDecisions.WithLabelValues("authenticate", "deny").Inc()
			response.Abort(c, errors.ErrInactiveUser)
			return
		}

		metrics.AccessDecisions.WithLabelValues("authenticate", "allow").Inc()
		c.Set(CtxUserKey, user)
		c.Set(CtxUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. Any other shape yields "".
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
