package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savethecatapp/savethecat-server/internal/beat"
)

// TestScreenplayLifecycle walks one user through a full writing session:
// sign up, build out a project, rearrange the corkboard, then tear it all
// down and leave.
func TestScreenplayLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	user := ts.registerTestUser(t, "screenwriter@example.com", "screenwriter")
	token := user.AccessToken

	// New project arrives with its beat sheet.
	project := ts.createTestProject(t, token, "the heist")
	require.Equal(t, "THE HEIST", project.Name)

	sheetResp := ts.api.Get("/api/v1/projects/"+project.ID+"/beatsheet", authHeader(token))
	require.Equal(t, http.StatusOK, sheetResp.Code)

	var sheetEnv testEnvelope[BeatSheetResponse]
	require.NoError(t, json.Unmarshal(sheetResp.Body.Bytes(), &sheetEnv))
	assert.Equal(t, "THE HEIST", sheetEnv.Data.Title)
	assert.Empty(t, sheetEnv.Data.Logline)

	// Fill in the sheet.
	body := fullSheetBody()
	resp := ts.api.Put("/api/v1/projects/"+project.ID+"/beatsheet", body, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	// Cast and locations.
	lead := ts.createTestEntity(t, token, project.ID, "characters", "danny")
	ts.createTestEntity(t, token, project.ID, "characters", "rusty")
	vault := ts.createTestEntity(t, token, project.ID, "locations", "the vault")

	assert.Equal(t, "DANNY", lead.Name)
	assert.Equal(t, "THE VAULT", vault.Name)

	// Corkboard: a beat-linked note and a free one.
	linked := ts.createTestNote(t, token, project.ID, map[string]any{
		"x":            100.0,
		"y":            50.0,
		"sceneHeading": "INT. VAULT - NIGHT",
		"beatItem":     "finale",
	})
	free := ts.createTestNote(t, token, project.ID, map[string]any{
		"x":           400.0,
		"y":           50.0,
		"description": "maybe cut this",
	})
	assert.Equal(t, beat.ColorFor("finale"), linked.Color)
	assert.Equal(t, beat.DefaultNoteColor, free.Color)

	// Rearrange.
	resp = ts.api.Patch("/api/v1/projects/"+project.ID+"/notes/"+linked.ID+"/position",
		map[string]any{"x": 120.0, "y": 80.0}, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Patch("/api/v1/projects/"+project.ID+"/notes/"+free.ID+"/color",
		map[string]any{"color": "#ff8a80"}, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	// Second thoughts: cut the free note and a character.
	resp = ts.api.Delete("/api/v1/projects/"+project.ID+"/notes/"+free.ID, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/projects/"+project.ID+"/characters/"+lead.ID, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	notes := ts.listTestNotes(t, token, project.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, linked.ID, notes[0].ID)
	assert.Equal(t, 120.0, notes[0].X)

	characters := ts.listTestEntities(t, token, project.ID, "characters")
	require.Len(t, characters, 1)
	assert.Equal(t, "RUSTY", characters[0].Name)

	// Retitle the whole thing; the sheet follows.
	resp = ts.api.Put("/api/v1/projects/"+project.ID,
		map[string]any{"name": "ocean's one"}, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	sheetResp = ts.api.Get("/api/v1/projects/"+project.ID+"/beatsheet", authHeader(token))
	require.Equal(t, http.StatusOK, sheetResp.Code)
	require.NoError(t, json.Unmarshal(sheetResp.Body.Bytes(), &sheetEnv))
	assert.Equal(t, "OCEAN'S ONE", sheetEnv.Data.Title)
	assert.Equal(t, body["logline"], sheetEnv.Data.Logline)

	// Wrap: delete the project, everything under it goes too.
	resp = ts.api.Delete("/api/v1/projects/"+project.ID, authHeader(token))
	require.Equal(t, http.StatusOK, resp.Code)

	listResp := ts.api.Get("/api/v1/projects", authHeader(token))
	require.Equal(t, http.StatusOK, listResp.Code)

	var projects testEnvelope[[]ProjectResponse]
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &projects))
	assert.Empty(t, projects.Data)
}
