package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/logger"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	NotifyContact(message *models.ContactMessage)
}

// ContactHandler serves /api/contact.
type ContactHandler struct {
	service  *services.ContactService
	notifier ContactNotifier
}

// NewContactHandler builds the handler. notifier may be nil.
func NewContactHandler(service *services.ContactService, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{service: service, notifier: notifier}
}

// POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var input services.ContactInput
	if !bindJSON(c, &input) {
		return
	}

	message, err := h.service.Submit(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}

	logger.WithModule("contact").Info("contact message received",
		zap.String("message_id", message.ID),
		zap.String("email", message.Email),
	)
	if h.notifier != nil {
		h.notifier.NotifyContact(message)
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"message": "Message sent successfully!",
		"id":      message.ID,
	})
}

// GET /api/contact
func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.service.List(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// GET /api/contact/:id
func (h *ContactHandler) Get(c *gin.Context) {
	message, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message)
}

// PATCH /api/contact/:id/read
func (h *ContactHandler) MarkRead(c *gin.Context) {
	message, err := h.service.MarkRead(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message)
}

// DELETE /api/contact/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Message deleted successfully")
}
