package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "mike@example.com",
		"nickname": "mike",
		"password": "SecurePassword123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.NotEmpty(t, envelope.Data.SessionID)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
	assert.Positive(t, envelope.Data.ExpiresIn)
	assert.Equal(t, "mike@example.com", envelope.Data.User.Email)
	assert.Equal(t, "mike", envelope.Data.User.Nickname)

	// The returned token works immediately.
	listResp := ts.api.Get("/api/v1/projects", authHeader(envelope.Data.AccessToken))
	assert.Equal(t, http.StatusOK, listResp.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "dup@example.com", "first")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "DUP@example.com", // case-insensitive collision
		"nickname": "second",
		"password": "SecurePassword123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "ALREADY_EXISTS", envelope.Code)
	assert.Contains(t, envelope.Message, "email")
}

func TestRegister_DuplicateNickname(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "one@example.com", "taken")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "two@example.com",
		"nickname": "Taken",
		"password": "SecurePassword123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "ALREADY_EXISTS", envelope.Code)
	assert.Contains(t, envelope.Message, "nickname")
}

func TestRegister_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "invalid email format",
			body: map[string]any{
				"email":    "not-an-email",
				"nickname": "nick",
				"password": "SecurePassword123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			body: map[string]any{
				"email":    "short@example.com",
				"nickname": "nick",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "nickname too short",
			body: map[string]any{
				"email":    "nick@example.com",
				"nickname": "x",
				"password": "SecurePassword123",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "login@example.com", "login")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "login@example.com",
		"password": "CorrectHorseBattery1",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "login@example.com", envelope.Data.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerTestUser(t, "wrong@example.com", "wrong")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "wrong@example.com",
		"password": "DefinitelyNotThePassword",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "SecurePassword123",
	})

	// Same status and message as a wrong password.
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
	assert.Contains(t, envelope.Message, "invalid email or password")
}

func TestRefresh_RotatesTokens(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "refresh@example.com", "refresh")

	resp := ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.RefreshToken)
	assert.NotEqual(t, reg.RefreshToken, envelope.Data.RefreshToken)

	// The old refresh token is dead after rotation.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "logout@example.com", "logout")

	resp := ts.api.Post("/api/v1/auth/logout", map[string]any{
		"session_id": reg.SessionID,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	// Refresh against the revoked session fails.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestChangePassword_RevokesAllSessions(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "change@example.com", "change")

	resp := ts.api.Post("/api/v1/auth/change-password", map[string]any{
		"current_password": "CorrectHorseBattery1",
		"new_password":     "EvenMoreSecure456",
	}, authHeader(reg.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	// Old refresh token no longer works.
	resp = ts.api.Post("/api/v1/auth/refresh", map[string]any{
		"refresh_token": reg.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Old password no longer works.
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "change@example.com",
		"password": "CorrectHorseBattery1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// New password does.
	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "change@example.com",
		"password": "EvenMoreSecure456",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "nope@example.com", "nope")

	resp := ts.api.Post("/api/v1/auth/change-password", map[string]any{
		"current_password": "NotMyPassword123",
		"new_password":     "EvenMoreSecure456",
	}, authHeader(reg.AccessToken))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Code)
}

func TestDeleteAccount_CascadesEverything(t *testing.T) {
	ts := setupTestServer(t)

	reg := ts.registerTestUser(t, "goner@example.com", "goner")
	project := ts.createTestProject(t, reg.AccessToken, "Doomed")

	resp := ts.api.Delete("/api/v1/auth/account", authHeader(reg.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	// Token is dead: the user behind it is gone.
	resp = ts.api.Get("/api/v1/projects", authHeader(reg.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// The email is free again and the new account sees nothing.
	fresh := ts.registerTestUser(t, "goner@example.com", "reborn")
	listResp := ts.api.Get("/api/v1/projects", authHeader(fresh.AccessToken))
	require.Equal(t, http.StatusOK, listResp.Code)

	var envelope testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)

	// The old project ID resolves to nothing for the new user.
	sheetResp := ts.api.Get("/api/v1/projects/"+project.ID+"/beatsheet", authHeader(fresh.AccessToken))
	assert.Equal(t, http.StatusNotFound, sheetResp.Code)
}
