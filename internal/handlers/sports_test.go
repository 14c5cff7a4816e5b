package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/handlers/testutil"
	"github.com/charlesng35/kurukshetra/internal/models"
)

type sportPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Venue    string `json:"venue"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

func TestSportsCreateRequiresAdmin(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateUser(models.RoleSportAdmin, nil)

	w := env.Request(http.MethodPost, "/api/sports", map[string]string{"name": "Table Tennis"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Request(http.MethodPost, "/api/sports", map[string]string{"name": "Table Tennis"}, env.TokenFor(admin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sport sportPayload
	testutil.Decode(t, w, &sport)
	require.Equal(t, "table-tennis", sport.Slug)
	require.Equal(t, "upcoming", sport.Status)

	w = env.Request(http.MethodPost, "/api/sports", map[string]string{"name": "table tennis"}, env.TokenFor(admin))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Sport with this slug already exists", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/sports", map[string]string{"venue": "Hall"}, env.TokenFor(admin))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Name is required", testutil.Message(t, w))
}

func TestSportsPublicReads(t *testing.T) {
	env := testutil.NewEnv(t)
	sport := env.CreateSport("Kabaddi")

	w := env.Request(http.MethodGet, "/api/sports", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []sportPayload
	testutil.Decode(t, w, &list)
	require.Len(t, list, 1)

	w = env.Request(http.MethodGet, "/api/sports/"+sport.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.Request(http.MethodGet, "/api/sports/slug/kabaddi", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.Request(http.MethodGet, "/api/sports/type/normal_sport", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &list)
	require.Len(t, list, 1)

	w = env.Request(http.MethodGet, "/api/sports/12345", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Sport not found", testutil.Message(t, w))
}

func TestSportsOwnership(t *testing.T) {
	env := testutil.NewEnv(t)
	football := env.CreateSport("Football")
	chess := env.CreateSport("Chess")
	hockey := env.CreateSport("Hockey")

	byID := env.CreateUser(models.RoleSportAdmin, []string{football.ID})
	byName := env.CreateUser(models.RoleSportAdmin, nil, "Chess")
	mainAdmin := env.CreateUser(models.RoleMainAdmin, nil)

	update := map[string]string{"venue": "Main Ground"}

	// Assigned by id.
	w := env.Request(http.MethodPut, "/api/sports/"+football.ID, update, env.TokenFor(byID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sport sportPayload
	testutil.Decode(t, w, &sport)
	require.Equal(t, "Main Ground", sport.Venue)

	// Listed by name.
	w = env.Request(http.MethodPut, "/api/sports/"+chess.ID, update, env.TokenFor(byName))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Neither key matches.
	w = env.Request(http.MethodPut, "/api/sports/"+hockey.ID, update, env.TokenFor(byID))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Access denied for this sport", testutil.Message(t, w))

	// Unknown sport is reported before ownership.
	w = env.Request(http.MethodPut, "/api/sports/00000000-0000-0000-0000-000000000000", update, env.TokenFor(byID))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Sport not found", testutil.Message(t, w))

	// Main admins manage every sport.
	w = env.Request(http.MethodPut, "/api/sports/"+hockey.ID, update, env.TokenFor(mainAdmin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.Request(http.MethodDelete, "/api/sports/"+hockey.ID, nil, env.TokenFor(byName))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.Request(http.MethodDelete, "/api/sports/"+football.ID, nil, env.TokenFor(byID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Sport deleted successfully", testutil.Message(t, w))
}

func TestSportsUpdateStatusByName(t *testing.T) {
	env := testutil.NewEnv(t)
	env.CreateSport("Chess")
	env.CreateSport("Football")
	byName := env.CreateUser(models.RoleSportAdmin, nil, "Chess")

	w := env.Request(http.MethodPut, "/api/sports/name/Chess/status", map[string]string{"status": "ongoing"}, env.TokenFor(byName))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Message string         `json:"message"`
		Sports  []sportPayload `json:"sports"`
	}
	testutil.Decode(t, w, &body)
	require.Equal(t, "Sport status updated successfully", body.Message)
	require.Len(t, body.Sports, 1)
	require.Equal(t, "ongoing", body.Sports[0].Status)

	w = env.Request(http.MethodPut, "/api/sports/name/Chess/status", map[string]string{"status": "paused"}, env.TokenFor(byName))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.Request(http.MethodPut, "/api/sports/name/Football/status", map[string]string{"status": "ongoing"}, env.TokenFor(byName))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Access denied for this sport", testutil.Message(t, w))
}
