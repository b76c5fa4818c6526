package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_NormalizesName(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "writer@example.com", "writer")

	resp := ts.api.Post("/api/v1/projects", map[string]any{
		"name": "  the   heist  ",
	}, authHeader(user.AccessToken))

	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ProjectResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "THE HEIST", envelope.Data.Name)
	assert.False(t, envelope.Data.CreatedAt.IsZero())
}

func TestCreateProject_BlankNameRejected(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "blank@example.com", "blank")

	resp := ts.api.Post("/api/v1/projects", map[string]any{
		"name": "   ",
	}, authHeader(user.AccessToken))

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestListProjects_OrderedByName(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "order@example.com", "order")

	ts.createTestProject(t, user.AccessToken, "Zulu")
	ts.createTestProject(t, user.AccessToken, "alpha")
	ts.createTestProject(t, user.AccessToken, "Mike")

	resp := ts.api.Get("/api/v1/projects", authHeader(user.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 3)
	assert.Equal(t, "ALPHA", envelope.Data[0].Name)
	assert.Equal(t, "MIKE", envelope.Data[1].Name)
	assert.Equal(t, "ZULU", envelope.Data[2].Name)
}

func TestListProjects_ScopedToOwner(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerTestUser(t, "alice@example.com", "alice")
	bob := ts.registerTestUser(t, "bob@example.com", "bob")

	ts.createTestProject(t, alice.AccessToken, "Alice Only")

	resp := ts.api.Get("/api/v1/projects", authHeader(bob.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}

func TestRenameProject_RewritesSheetTitle(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "rename@example.com", "rename")
	project := ts.createTestProject(t, user.AccessToken, "Working Title")

	resp := ts.api.Put("/api/v1/projects/"+project.ID, map[string]any{
		"name": "final cut",
	}, authHeader(user.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	listResp := ts.api.Get("/api/v1/projects", authHeader(user.AccessToken))
	require.Equal(t, http.StatusOK, listResp.Code)

	var list testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "FINAL CUT", list.Data[0].Name)

	// The beat sheet title follows the project name.
	sheetResp := ts.api.Get("/api/v1/projects/"+project.ID+"/beatsheet", authHeader(user.AccessToken))
	require.Equal(t, http.StatusOK, sheetResp.Code)

	var sheet testEnvelope[BeatSheetResponse]
	require.NoError(t, json.Unmarshal(sheetResp.Body.Bytes(), &sheet))
	assert.Equal(t, "FINAL CUT", sheet.Data.Title)
}

func TestRenameProject_ForeignProjectIsNoOp(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.registerTestUser(t, "alice2@example.com", "alice2")
	bob := ts.registerTestUser(t, "bob2@example.com", "bob2")
	project := ts.createTestProject(t, alice.AccessToken, "Untouchable")

	resp := ts.api.Put("/api/v1/projects/"+project.ID, map[string]any{
		"name": "Hijacked",
	}, authHeader(bob.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	// Alice's project is unchanged.
	listResp := ts.api.Get("/api/v1/projects", authHeader(alice.AccessToken))
	require.Equal(t, http.StatusOK, listResp.Code)

	var list testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "UNTOUCHABLE", list.Data[0].Name)
}

func TestDeleteProject_CascadesChildren(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "cascade@example.com", "cascade")
	project := ts.createTestProject(t, user.AccessToken, "Doomed")

	createResp := ts.api.Post("/api/v1/projects/"+project.ID+"/characters", map[string]any{
		"name": "Nick",
	}, authHeader(user.AccessToken))
	require.Equal(t, http.StatusOK, createResp.Code)

	resp := ts.api.Delete("/api/v1/projects/"+project.ID, authHeader(user.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	listResp := ts.api.Get("/api/v1/projects", authHeader(user.AccessToken))
	require.Equal(t, http.StatusOK, listResp.Code)

	var list testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &list))
	assert.Empty(t, list.Data)

	// The sheet went with the project.
	sheetResp := ts.api.Get("/api/v1/projects/"+project.ID+"/beatsheet", authHeader(user.AccessToken))
	assert.Equal(t, http.StatusNotFound, sheetResp.Code)
}

func TestDeleteProject_Idempotent(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.registerTestUser(t, "idem@example.com", "idem")
	project := ts.createTestProject(t, user.AccessToken, "Twice Dead")

	resp := ts.api.Delete("/api/v1/projects/"+project.ID, authHeader(user.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/projects/"+project.ID, authHeader(user.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)
}
