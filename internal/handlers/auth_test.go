package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/handlers/testutil"
	"github.com/charlesng35/kurukshetra/internal/models"
)

func TestAuthLoginSuccess(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleSportAdmin, nil, "Football")

	result := env.Login(user.Email, testutil.DefaultPassword)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, string(models.RoleSportAdmin), result.User.Role)
	require.Equal(t, []string{"Football"}, result.User.SportNames)
	require.NotNil(t, result.User.LastLogin)

	userID, err := env.JWT.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAuthLoginFailures(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleSportAdmin, nil)

	w := env.Request(http.MethodPost, "/api/auth/login", map[string]string{"email": user.Email}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Email and password are required", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/auth/login", map[string]string{"email": user.Email, "password": "wrong-password"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid credentials", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@example.com", "password": "whatever"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid credentials", testutil.Message(t, w))

	require.NoError(t, env.DB.Model(user).Update("is_active", false).Error)
	w = env.Request(http.MethodPost, "/api/auth/login", map[string]string{"email": user.Email, "password": testutil.DefaultPassword}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Account is deactivated", testutil.Message(t, w))
}

func TestAuthLoginRejectsMalformedJSON(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/auth/login", "not-an-object", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request", testutil.Message(t, w))
}

func TestAuthLoginRateLimited(t *testing.T) {
	env := testutil.NewEnv(t, testutil.WithLoginLimit(2, time.Minute))
	body := map[string]string{"email": "nobody@example.com", "password": "whatever"}

	for i := 0; i < 2; i++ {
		w := env.Request(http.MethodPost, "/api/auth/login", body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.Request(http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestAuthTokenLifetime(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleSportAdmin, nil)
	token := env.Login(user.Email, testutil.DefaultPassword).Token

	w := env.Request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env.Clock.Advance(24*time.Hour - time.Second)
	w = env.Request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "token is valid until its expiry instant")

	env.Clock.Advance(2 * time.Second)
	w = env.Request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Invalid token", testutil.Message(t, w))
}

func TestAuthMeDistinguishesMissingAndInvalidTokens(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleSportAdmin, nil)

	w := env.Request(http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Access token required", testutil.Message(t, w))

	w = env.Request(http.MethodGet, "/api/auth/me", nil, "garbage.token.value")
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Invalid token", testutil.Message(t, w))

	token := env.TokenFor(user)
	require.NoError(t, env.DB.Model(user).Update("is_active", false).Error)
	w = env.Request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid or inactive user", testutil.Message(t, w))

	require.NoError(t, env.DB.Delete(user).Error)
	w = env.Request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid or inactive user", testutil.Message(t, w))
}

func TestAuthMeReturnsUser(t *testing.T) {
	env := testutil.NewEnv(t)
	football := env.CreateSport("Football")
	user := env.CreateUser(models.RoleSportAdmin, []string{football.ID})

	w := env.Request(http.MethodGet, "/api/auth/me", nil, env.TokenFor(user))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		User testutil.UserPayload `json:"user"`
	}
	testutil.Decode(t, w, &body)
	require.Equal(t, user.Username, body.User.Username)
	require.Equal(t, []string{football.ID}, body.User.AssignedSports)
	require.NotNil(t, body.User.SportNames)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthRegister(t *testing.T) {
	env := testutil.NewEnv(t)
	mainAdmin := env.CreateUser(models.RoleMainAdmin, nil)
	sportAdmin := env.CreateUser(models.RoleSportAdmin, nil)

	payload := map[string]any{
		"username":   "newcoach",
		"email":      "newcoach@example.com",
		"password":   "secret1",
		"sportNames": []string{"Chess"},
	}

	w := env.Request(http.MethodPost, "/api/auth/register", payload, env.TokenFor(sportAdmin))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Main admin access required", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/auth/register", payload, env.TokenFor(mainAdmin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string               `json:"message"`
		User    testutil.UserPayload `json:"user"`
	}
	testutil.Decode(t, w, &created)
	require.Equal(t, "User created successfully", created.Message)
	require.Equal(t, "newcoach", created.User.Username)
	require.Equal(t, string(models.RoleSportAdmin), created.User.Role)
	require.True(t, created.User.IsActive)

	// Registering the same email again is rejected and leaves a single record.
	payload["username"] = "another"
	w = env.Request(http.MethodPost, "/api/auth/register", payload, env.TokenFor(mainAdmin))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "User already exists", testutil.Message(t, w))

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).Where("email = ?", "newcoach@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)

	env.Login("newcoach@example.com", "secret1")
}

func TestAuthRegisterValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.TokenFor(env.CreateUser(models.RoleMainAdmin, nil))

	w := env.Request(http.MethodPost, "/api/auth/register", map[string]string{"username": "abc"}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Username, email, and password are required", testutil.Message(t, w))

	w = env.Request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "ab",
		"email":    "short@example.com",
		"password": "123",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body testutil.ErrorResponse
	testutil.Decode(t, w, &body)
	require.Equal(t, "Validation error", body.Message)
	require.NotEmpty(t, body.Errors)
}

func TestAuthChangePassword(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleSportAdmin, nil)
	token := env.TokenFor(user)

	w := env.Request(http.MethodPut, "/api/auth/password", map[string]string{
		"currentPassword": "wrong-password",
		"newPassword":     "brand-new",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Current password is incorrect", testutil.Message(t, w))

	w = env.Request(http.MethodPut, "/api/auth/password", map[string]string{
		"currentPassword": testutil.DefaultPassword,
		"newPassword":     "brand-new",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "Password updated successfully", testutil.Message(t, w))

	env.Login(user.Email, "brand-new")
}
