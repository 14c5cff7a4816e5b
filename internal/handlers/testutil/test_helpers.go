package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/api"
	"github.com/charlesng35/kurukshetra/internal/app"
	iauth "github.com/charlesng35/kurukshetra/internal/auth"
	sharedtestutil "github.com/charlesng35/kurukshetra/internal/database/testutil"
	"github.com/charlesng35/kurukshetra/internal/middleware"
	"github.com/charlesng35/kurukshetra/internal/models"
	"github.com/charlesng35/kurukshetra/internal/realtime"
	"github.com/charlesng35/kurukshetra/internal/services"
)

// DefaultPassword is the password given to users created through CreateUser.
const DefaultPassword = "password123"

// Clock is a settable time source shared by the token service and the
// domain services of an Env.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set pins the clock to at.
func (c *Clock) Set(at time.Time) {
	c.mu.Lock()
	c.now = at
	c.mu.Unlock()
}

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T        *testing.T
	DB       *gorm.DB
	Router   *gin.Engine
	JWT      *iauth.JWTService
	Services *api.Services
	Clock    *Clock
	Live     *realtime.Hub
	Contacts *RecordingNotifier
}

// RecordingNotifier collects contact notifications in memory.
type RecordingNotifier struct {
	mu       sync.Mutex
	messages []models.ContactMessage
}

func (r *RecordingNotifier) NotifyContact(message *models.ContactMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *message)
}

// Messages returns a copy of the notifications received so far.
func (r *RecordingNotifier) Messages() []models.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ContactMessage(nil), r.messages...)
}

// EnvOption customises the configuration used by NewEnv.
type EnvOption func(*app.Config)

// WithLoginLimit enables the login rate limiter with the given budget.
func WithLoginLimit(requests int, window time.Duration) EnvOption {
	return func(cfg *app.Config) {
		cfg.Server.RateLimit = app.RateLimitConfig{Enabled: true, Requests: requests, Window: window}
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())
	clock := &Clock{now: time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)}

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: "test-suite-super-secret-key-32-bytes!!",
				Issuer: "test-suite",
				TTL:    iauth.DefaultTokenTTL,
			},
		},
		Cache: app.CacheConfig{SportTTL: time.Minute},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true, Timeout: time.Second},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	jwtCfg := cfg.Auth.JWTServiceConfig()
	jwtCfg.Clock = clock.Now
	jwtSvc, err := iauth.NewJWTService(jwtCfg)
	require.NoError(t, err)

	svc, err := api.NewServices(db, api.ServiceOptions{
		SportTTL: cfg.Cache.SportListTTL(),
		Clock:    services.Clock(clock.Now),
	})
	require.NoError(t, err)

	live := realtime.NewHub()
	contacts := &RecordingNotifier{}
	router, err := api.NewRouter(api.Dependencies{
		Config:    cfg,
		Services:  svc,
		Tokens:    jwtSvc,
		RateStore: middleware.NewMemoryRateStore(),
		Live:      live,
		Notifier:  contacts,
	})
	require.NoError(t, err)

	return &Env{
		T:        t,
		DB:       db,
		Router:   router,
		JWT:      jwtSvc,
		Services: svc,
		Clock:    clock,
		Live:     live,
		Contacts: contacts,
	}
}

// CreateUser inserts an active user with the given role and sport assignments
// and returns the stored record. The password is DefaultPassword.
func (e *Env) CreateUser(role models.Role, assignedSports []string, sportNames ...string) *models.User {
	e.T.Helper()

	username := "user-" + uuid.NewString()[:8]
	user, err := e.Services.Users.Create(context.Background(), services.CreateUserInput{
		Username:       username,
		Email:          username + "@example.com",
		Password:       DefaultPassword,
		Role:           string(role),
		AssignedSports: assignedSports,
		SportNames:     sportNames,
	})
	require.NoError(e.T, err)
	return user
}

// CreateSport inserts a sport directly through the service layer.
func (e *Env) CreateSport(name string) *models.Sport {
	e.T.Helper()

	sport, err := e.Services.Sports.Create(context.Background(), services.SportInput{Name: &name})
	require.NoError(e.T, err)
	return sport
}

// TokenFor issues a token for user without going through the login endpoint.
func (e *Env) TokenFor(user *models.User) string {
	e.T.Helper()

	token, err := e.JWT.Issue(user.ID)
	require.NoError(e.T, err)
	return token
}

// UserPayload captures the user fields returned from auth endpoints.
type UserPayload struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	AssignedSports []string   `json:"assignedSports"`
	SportNames     []string   `json:"sportNames"`
	IsActive       bool       `json:"isActive"`
	LastLogin      *time.Time `json:"lastLogin"`
}

// LoginResult mirrors the POST /api/auth/login response.
type LoginResult struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

// Login authenticates with email and password and returns the decoded response.
func (e *Env) Login(email, password string) LoginResult {
	e.T.Helper()

	w := e.Request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(e.T, http.StatusOK, w.Code, w.Body.String())

	var result LoginResult
	Decode(e.T, w, &result)
	require.Equal(e.T, "Login successful", result.Message)
	require.NotEmpty(e.T, result.Token)
	return result
}

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// Decode unmarshals the recorder body into dest.
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

// Message returns the "message" field of a JSON response body.
func Message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	Decode(t, w, &body)
	return body.Message
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	buf := bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
