package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savethecatapp/savethecat-server/internal/auth"
	"github.com/savethecatapp/savethecat-server/internal/service"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// testKeyHex is a fixed PASETO key for tests (32 bytes as hex).
const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testEnvelope mirrors the response envelope for test assertions.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api          humatest.TestAPI
	tokenService *auth.TokenService
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestServer creates a test server with all dependencies on a temp database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	logger := discardLogger()

	st, err := store.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, logger)

	services := &Services{
		Auth:      authService,
		Session:   sessionService,
		Project:   service.NewProjectService(st, logger),
		BeatSheet: service.NewBeatSheetService(st, logger),
		Entity:    service.NewEntityService(st, logger),
		Note:      service.NewNoteService(st, logger),
	}

	s := NewServer(st, services, logger)

	return &testServer{
		Server:       s,
		api:          humatest.Wrap(t, s.api),
		tokenService: tokenService,
	}
}

// registerTestUser registers a user through the API and returns the auth payload.
func (ts *testServer) registerTestUser(t *testing.T, email, nickname string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    email,
		"nickname": nickname,
		"password": "CorrectHorseBattery1",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data
}

// createTestProject creates a project through the API and returns it.
func (ts *testServer) createTestProject(t *testing.T, token, name string) ProjectResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/projects", map[string]any{"name": name},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, "create project failed: %s", resp.Body.String())

	var envelope testEnvelope[ProjectResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.ID)

	return envelope.Data
}

func authHeader(token string) string {
	return "Authorization: Bearer " + token
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}

func TestNewServerInstallsMiddlewareBeforeRoutes(t *testing.T) {
	// Constructing the server must not trip chi's middleware-after-route
	// panic, and the stack must actually be live: a CORS preflight is
	// answered by the middleware, not by any registered handler.
	ts := setupTestServer(t)

	resp := ts.api.Do(http.MethodOptions, "/api/v1/projects",
		"Origin: http://localhost:5173",
		"Access-Control-Request-Method: GET")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nonexistent")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/projects")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/projects", map[string]any{"name": "HEIST"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/projects", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/projects", "Authorization: Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
