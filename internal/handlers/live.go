package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/realtime"
)

// LiveHandler upgrades scoreboard viewers to a WebSocket feed of match changes.
type LiveHandler struct {
	hub *realtime.Hub
}

func NewLiveHandler(hub *realtime.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// GET /api/live?sport=football,chess
func (h *LiveHandler) Stream(c *gin.Context) {
	h.hub.Serve(c.Writer, c.Request, realtime.StreamsForSports(c.Query("sport")))
}
