package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// SportHandler serves /api/sports.
type SportHandler struct {
	service *services.SportService
}

func NewSportHandler(service *services.SportService) *SportHandler {
	return &SportHandler{service: service}
}

// GET /api/sports
func (h *SportHandler) List(c *gin.Context) {
	sports, err := h.service.List(requestContext(c), services.SportFilter{
		Type:     strings.TrimSpace(c.Query("type")),
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sports)
}

// GET /api/sports/type/:type
func (h *SportHandler) ListByType(c *gin.Context) {
	sports, err := h.service.ListByType(requestContext(c), c.Param("type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sports)
}

// GET /api/sports/upcoming
func (h *SportHandler) Upcoming(c *gin.Context) {
	sports, err := h.service.Upcoming(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sports)
}

// GET /api/sports/slug/:slug
func (h *SportHandler) GetBySlug(c *gin.Context) {
	sport, err := h.service.GetBySlug(requestContext(c), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport)
}

// GET /api/sports/:id
func (h *SportHandler) Get(c *gin.Context) {
	sport, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport)
}

// POST /api/sports
func (h *SportHandler) Create(c *gin.Context) {
	var input services.SportInput
	if !bindJSON(c, &input) {
		return
	}

	sport, err := h.service.Create(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, sport)
}

// PUT /api/sports/:id
func (h *SportHandler) Update(c *gin.Context) {
	var input services.SportInput
	if !bindJSON(c, &input) {
		return
	}

	sport, err := h.service.Update(requestContext(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sport)
}

type sportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming ongoing completed cancelled"`
}

// PUT /api/sports/name/:sportName/status
func (h *SportHandler) UpdateStatusByName(c *gin.Context) {
	var req sportStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	sports, err := h.service.UpdateStatusByName(requestContext(c), c.Param("sportName"), models.Status(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message": "Sport status updated successfully",
		"sports":  sports,
	})
}

// DELETE /api/sports/:id
func (h *SportHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Sport deleted successfully")
}
