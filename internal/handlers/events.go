package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// eventResponse decorates a stored event with its date-derived labels.
type eventResponse struct {
	models.Event
	TimelineStatus     string `json:"timelineStatus"`
	RegistrationStatus string `json:"registrationStatus"`
}

// EventHandler serves /api/events.
type EventHandler struct {
	service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) view(event *models.Event) eventResponse {
	now := h.service.Now()
	return eventResponse{
		Event:              *event,
		TimelineStatus:     models.TimelineStatus(event.Date, now),
		RegistrationStatus: models.RegistrationStatus(event.Date, now),
	}
}

// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, h.view(&events[i]))
	}
	response.JSON(c, http.StatusOK, out)
}

// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.view(event))
}

// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var input services.EventInput
	if !bindJSON(c, &input) {
		return
	}

	event, err := h.service.Create(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, h.view(event))
}

// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var input services.EventInput
	if !bindJSON(c, &input) {
		return
	}

	event, err := h.service.Update(requestContext(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.view(event))
}

// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(requestContext(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Event deleted successfully")
}
