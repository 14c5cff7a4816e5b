package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// GalleryHandler serves /api/gallery.
type GalleryHandler struct {
	service *services.GalleryService
}

func NewGalleryHandler(service *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// GET /api/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.service.List(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, images)
}

// GET /api/gallery/:id
func (h *GalleryHandler) Get(c *gin.Context) {
	image, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, image)
}

// POST /api/gallery
func (h *GalleryHandler) Create(c *gin.Context) {
	var input services.GalleryInput
	if !bindJSON(c, &input) {
		return
	}

	image, err := h.service.Create(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, image)
}

// PUT /api/gallery/:id
func (h *GalleryHandler) Update(c *gin.Context) {
	var input services.GalleryInput
	if !bindJSON(c, &input) {
		return
	}

	image, err := h.service.Update(requestContext(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, image)
}

// DELETE /api/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Image deleted successfully")
}
