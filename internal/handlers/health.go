package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/monitoring"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	manager *monitoring.HealthManager
}

func NewHealthHandler(manager *monitoring.HealthManager) *HealthHandler {
	return &HealthHandler{manager: manager}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	h.write(c, h.manager.EvaluateReadiness(requestContext(c)))
}

// GET /health/live
func (h *HealthHandler) Liveness(c *gin.Context) {
	h.write(c, h.manager.EvaluateLiveness(requestContext(c)))
}

// GET /health/ready
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.write(c, h.manager.EvaluateReadiness(requestContext(c)))
}

func (h *HealthHandler) write(c *gin.Context, report monitoring.HealthReport) {
	status := http.StatusOK
	if report.Status == monitoring.StatusDown {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}
