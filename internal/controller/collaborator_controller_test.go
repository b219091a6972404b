package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doJSONList array dönen endpoint'ler için doJSON'un karşılığı.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

func TestAddCollaborators_SkipsOwnerAndUnknown(t *testing.T) {
	app := setupTestApp(t)
	ownerToken, ownerID := registerUser(t, app, "owner@example.com")
	_, aliceID := registerUser(t, app, "alice@example.com")

	wsID := createTestWorkspace(t, app, ownerToken, "Acme")

	resp, body := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{aliceID, ownerID, "00000000-0000-0000-0000-000000000000"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Len(t, body["added"].([]interface{}), 1)
	assert.Len(t, body["skipped"].([]interface{}), 2)
}

func TestAddCollaborators_DuplicateIsSkipped(t *testing.T) {
	app := setupTestApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com")
	_, aliceID := registerUser(t, app, "alice@example.com")

	wsID := createTestWorkspace(t, app, ownerToken, "Acme")

	payload := map[string]interface{}{"user_ids": []string{aliceID}}

	resp, _ := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["added"])
	assert.Len(t, body["skipped"].([]interface{}), 1)

	var count int64
	database.GetDB().Model(&model.Collaborator{}).Where("workspace_id = ?", wsID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCollaborators_RemoveThenAddAnother(t *testing.T) {
	app := setupTestApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com")
	_, aliceID := registerUser(t, app, "alice@example.com")
	_, bobID := registerUser(t, app, "bob@example.com")
	_, carolID := registerUser(t, app, "carol@example.com")

	wsID := createTestWorkspace(t, app, ownerToken, "Acme")

	resp, _ := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{aliceID, bobID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "DELETE", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{bobID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["removed"])

	resp, _ = doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{carolID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, list := doJSONList(t, app, "GET", "/api/workspaces/"+wsID+"/collaborators", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 2)

	members := map[string]bool{}
	for _, item := range list {
		members[item["user_id"].(string)] = true
	}
	assert.True(t, members[aliceID])
	assert.True(t, members[carolID])
	assert.False(t, members[bobID])

	// Local oturum state'i de aynı üyelik kümesini yansıtır
	local := editSession.State().Collaborators(wsID)
	require.Len(t, local, 2)
	assert.Equal(t, aliceID, local[0].ID)
	assert.Equal(t, carolID, local[1].ID)
}

func TestDeleteWorkspace_ClearsSessionCollaborators(t *testing.T) {
	app := setupTestApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com")
	_, aliceID := registerUser(t, app, "alice@example.com")

	wsID := createTestWorkspace(t, app, ownerToken, "Acme")

	resp, _ := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{aliceID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, editSession.State().Collaborators(wsID), 1)

	resp, _ = doJSON(t, app, "DELETE", "/api/workspaces/"+wsID, ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Empty(t, editSession.State().Collaborators(wsID))
	_, ok := editSession.State().Workspace(wsID)
	assert.False(t, ok)
}

func TestAddCollaborators_OnlyOwner(t *testing.T) {
	app := setupTestApp(t)
	ownerToken, _ := registerUser(t, app, "owner@example.com")
	aliceToken, aliceID := registerUser(t, app, "alice@example.com")
	_, bobID := registerUser(t, app, "bob@example.com")

	wsID := createTestWorkspace(t, app, ownerToken, "Acme")

	resp, _ := doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", ownerToken, map[string]interface{}{
		"user_ids": []string{aliceID},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/workspaces/"+wsID+"/collaborators", aliceToken, map[string]interface{}{
		"user_ids": []string{bobID},
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSearchUsers_EmailPrefix(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerUser(t, app, "owner@example.com")
	registerUser(t, app, "alice@example.com")
	registerUser(t, app, "albert@example.com")
	registerUser(t, app, "bob@example.com")

	resp, list := doJSONList(t, app, "GET", "/api/users/search?email=al", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 2)

	// Parola aramada sızmamalı
	for _, item := range list {
		_, hasPassword := item["password"]
		assert.False(t, hasPassword)
	}
}

func TestSearchUsers_RequiresQuery(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerUser(t, app, "owner@example.com")

	resp, _ := doJSON(t, app, "GET", "/api/users/search", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
