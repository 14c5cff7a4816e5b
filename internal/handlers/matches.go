package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/permissions"
	"github.com/charlesng35/kurukshetra/internal/realtime"
	"github.com/charlesng35/kurukshetra/internal/services"
	"github.com/charlesng35/kurukshetra/pkg/response"
)

// MatchPublisher pushes fixture changes to live scoreboard viewers.
type MatchPublisher interface {
	PublishMatch(event string, match *models.Match)
}

// MatchHandler serves /api/matches.
type MatchHandler struct {
	service *services.MatchService
	access  *permissions.Checker
	live    MatchPublisher
}

// NewMatchHandler constructs a MatchHandler. live may be nil.
func NewMatchHandler(service *services.MatchService, access *permissions.Checker, live MatchPublisher) *MatchHandler {
	if access == nil {
		access = permissions.NewChecker(nil)
	}
	return &MatchHandler{service: service, access: access, live: live}
}

// canManage checks that the caller administers sport. Routes addressed by
// match id only learn the sport once the match is loaded, so the check runs
// here rather than in a route gate.
func (h *MatchHandler) canManage(c *gin.Context, sport string) bool {
	user, ok := currentUser(c)
	if !ok {
		return false
	}
	return middleware.Allow(c, "match_sport", user, h.access.CanManageSportByName(user, sport))
}

// loadManaged fetches the match behind the id in the path and checks the
// caller may manage its sport.
func (h *MatchHandler) loadManaged(c *gin.Context, names ...string) (*models.Match, bool) {
	match, err := h.service.GetByID(requestContext(c), pathParam(c, names...))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if !h.canManage(c, match.Sport) {
		return nil, false
	}
	return match, true
}

func (h *MatchHandler) publish(event string, match *models.Match) {
	if h.live != nil {
		h.live.PublishMatch(event, match)
	}
}

// GET /api/matches
func (h *MatchHandler) List(c *gin.Context) {
	matches, err := h.service.List(requestContext(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches)
}

// GET /api/matches/:sport
func (h *MatchHandler) ListBySport(c *gin.Context) {
	matches, err := h.service.ListBySport(requestContext(c), c.Param("sport"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matches)
}

// GET /api/matches/id/:id
func (h *MatchHandler) Get(c *gin.Context) {
	match, err := h.service.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, match)
}

// GET /api/matches/:sport/:slug
func (h *MatchHandler) GetBySlug(c *gin.Context) {
	match, err := h.service.GetBySlug(requestContext(c), c.Param("sport"), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, match)
}

// POST /api/matches
func (h *MatchHandler) Create(c *gin.Context) {
	var input services.MatchInput
	if !bindJSON(c, &input) {
		return
	}
	// A missing sport is reported by validation.
	if input.Sport != nil && strings.TrimSpace(*input.Sport) != "" && !h.canManage(c, *input.Sport) {
		return
	}

	match, err := h.service.Create(requestContext(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchCreated, match)
	response.JSON(c, http.StatusCreated, match)
}

// POST /api/matches/:sport
func (h *MatchHandler) CreateForSport(c *gin.Context) {
	var input services.MatchInput
	if !bindJSON(c, &input) {
		return
	}

	match, err := h.service.CreateForSport(requestContext(c), c.Param("sport"), input)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchCreated, match)
	response.JSON(c, http.StatusCreated, match)
}

// PUT /api/matches/:ref (match id)
func (h *MatchHandler) Update(c *gin.Context) {
	var input services.MatchInput
	if !bindJSON(c, &input) {
		return
	}
	current, ok := h.loadManaged(c, "id", "ref")
	if !ok {
		return
	}
	if input.Sport != nil && strings.TrimSpace(*input.Sport) != "" && !h.canManage(c, *input.Sport) {
		return
	}

	match, err := h.service.Update(requestContext(c), current.ID, input)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchUpdated, match)
	response.JSON(c, http.StatusOK, match)
}

// PUT /api/matches/:ref/:slug (ref is the sport)
func (h *MatchHandler) UpdateBySlug(c *gin.Context) {
	var input services.MatchInput
	if !bindJSON(c, &input) {
		return
	}

	match, err := h.service.UpdateBySlug(requestContext(c), pathParam(c, "sport", "ref"), c.Param("slug"), input)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchUpdated, match)
	response.JSON(c, http.StatusOK, match)
}

// PATCH /api/matches/:id/score
func (h *MatchHandler) ApplyScore(c *gin.Context) {
	var delta services.ScoreDelta
	if !bindJSON(c, &delta) {
		return
	}
	current, ok := h.loadManaged(c, "id")
	if !ok {
		return
	}

	match, err := h.service.ApplyScore(requestContext(c), current.ID, delta)
	if err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchUpdated, match)
	response.JSON(c, http.StatusOK, match)
}

// DELETE /api/matches/:ref (match id)
func (h *MatchHandler) Delete(c *gin.Context) {
	match, ok := h.loadManaged(c, "id", "ref")
	if !ok {
		return
	}
	if err := h.service.Delete(requestContext(c), match.ID); err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchDeleted, match)
	response.Message(c, http.StatusOK, "Match deleted successfully")
}

// DELETE /api/matches/:ref/:slug (ref is the sport)
func (h *MatchHandler) DeleteBySlug(c *gin.Context) {
	sport, slug := pathParam(c, "sport", "ref"), c.Param("slug")
	if err := h.service.DeleteBySlug(requestContext(c), sport, slug); err != nil {
		fail(c, err)
		return
	}
	h.publish(realtime.EventMatchDeleted, &models.Match{Sport: sport, Slug: slug})
	response.Message(c, http.StatusOK, "Match deleted successfully")
}
