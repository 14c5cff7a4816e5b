package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// userResponse is the public shape of an account. The password hash never
// leaves the service layer.
type userResponse struct {
	ID             string      `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	AssignedSports []string    `json:"assignedSports"`
	SportNames     []string    `json:"sportNames"`
	IsActive       bool        `json:"isActive"`
	LastLogin      *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func newUserResponse(user *models.User) userResponse {
	names := []string(user.SportNames)
	if names == nil {
		names = []string{}
	}
	return userResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		AssignedSports: user.AssignedSportIDs(),
		SportNames:     names,
		IsActive:       user.IsActive,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
	}
}

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /api/auth/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	response.JSON(c, http.StatusOK, gin.H{"users": out})
}

// PUT /api/auth/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var input services.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.service.Update(requestContext(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    newUserResponse(user),
	})
}

// DELETE /api/auth/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(requestContext(c), actor.ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted successfully")
}
