package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/handlers/testutil"
	"github.com/charlesng35/kurukshetra/internal/models"
)

func TestGalleryWritesAreAdminOnly(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.TokenFor(env.CreateUser(models.RoleSportAdmin, nil))
	image := map[string]string{"url": "https://example.com/a.jpg", "caption": "Opening day"}

	w := env.Request(http.MethodPost, "/api/gallery", image, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Request(http.MethodPost, "/api/gallery", map[string]string{"caption": "no url"}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "URL is required", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/gallery", image, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID      string `json:"id"`
		URL     string `json:"url"`
		Caption string `json:"caption"`
	}
	testutil.Decode(t, w, &created)
	require.Equal(t, "Opening day", created.Caption)

	w = env.Request(http.MethodGet, "/api/gallery/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.Request(http.MethodPut, "/api/gallery/"+created.ID, map[string]string{"caption": "Finals"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	testutil.Decode(t, w, &created)
	require.Equal(t, "Finals", created.Caption)

	w = env.Request(http.MethodDelete, "/api/gallery/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Image deleted successfully", testutil.Message(t, w))

	w = env.Request(http.MethodGet, "/api/gallery/"+created.ID, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Image not found", testutil.Message(t, w))
}
