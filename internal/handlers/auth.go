package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/errors"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/metrics"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthHandler manages authentication flows (login/register/me/password).
type AuthHandler struct {
	users  *services.UserService
	tokens TokenIssuer
}

func NewAuthHandler(users *services.UserService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, errors.NewBadRequest("Email and password are required"))
		return
	}

	ctx := requestContext(c)
	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			metrics.AuthAttempts.WithLabelValues("invalid").Inc()
			response.Error(c, errors.ErrInvalidCredentials)
			return
		}
		metrics.AuthAttempts.WithLabelValues("error").Inc()
		fail(c, err)
		return
	}

	if !user.IsActive {
		metrics.AuthAttempts.WithLabelValues("inactive").Inc()
		response.Error(c, errors.ErrAccountDeactivated)
		return
	}

	if !h.users.VerifyPassword(user, req.Password) {
		metrics.AuthAttempts.WithLabelValues("invalid").Inc()
		response.Error(c, errors.ErrInvalidCredentials)
		return
	}

	if err := h.users.RecordLogin(ctx, user); err != nil {
		// A failed lastLogin write does not block the sign-in.
		logger.WithModule("auth").Warn("record login", zap.String("user_id", user.ID), zap.Error(err))
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("error").Inc()
		fail(c, errors.Wrap(err, "Server error"))
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	response.JSON(c, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    newUserResponse(user),
	})
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input services.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.users.Create(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    newUserResponse(user),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": newUserResponse(user)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.users.ChangePassword(requestContext(c), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password updated successfully")
}
