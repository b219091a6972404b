package controller

import (
	"testing"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_ReturnsPublicFields(t *testing.T) {
	app := setupTestApp(t)
	token, userID := registerUser(t, app, "user@example.com")

	resp, body := doJSON(t, app, "GET", "/api/settings/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, userID, body["id"])
	assert.Equal(t, "user@example.com", body["email"])
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	app := setupTestApp(t)
	token, userID := registerUser(t, app, "user@example.com")

	resp, _ := doJSON(t, app, "PUT", "/api/settings/profile", token, map[string]interface{}{
		"billing_address": map[string]string{"city": "Istanbul", "country": "TR"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user model.User
	require.NoError(t, database.GetDB().First(&user, "id = ?", userID).Error)
	assert.Equal(t, "Test User", user.FullName, "full name must be untouched")
	assert.Contains(t, string(user.BillingAddress), "Istanbul")
}

func TestUpdateWorkspace_BannerRequiresProPlan(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerUser(t, app, "free@example.com")
	wsID := createTestWorkspace(t, app, token, "Acme")

	resp, body := doJSON(t, app, "PUT", "/api/workspaces/"+wsID, token, map[string]string{
		"banner_url": "https://cdn.cypress.app/file-banners/banner.custom",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["error"], "subscription plan")

	var ws model.Workspace
	require.NoError(t, database.GetDB().First(&ws, "id = ?", wsID).Error)
	assert.Empty(t, ws.BannerURL)
}

func TestUpdateWorkspace_BannerAllowedForProPlan(t *testing.T) {
	app := setupTestApp(t)
	token, userID := registerUser(t, app, "pro@example.com")
	wsID := createTestWorkspace(t, app, token, "Acme")
	grantProPlan(t, userID)

	resp, _ := doJSON(t, app, "PUT", "/api/workspaces/"+wsID, token, map[string]string{
		"banner_url": "https://cdn.cypress.app/file-banners/banner.custom",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ws model.Workspace
	require.NoError(t, database.GetDB().First(&ws, "id = ?", wsID).Error)
	assert.Equal(t, "https://cdn.cypress.app/file-banners/banner.custom", ws.BannerURL)
}

func TestUploadWorkspaceBanner_GatedByPlan(t *testing.T) {
	app := setupTestApp(t)
	freeToken, _ := registerUser(t, app, "free@example.com")
	proToken, proID := registerUser(t, app, "pro@example.com")

	freeWs := createTestWorkspace(t, app, freeToken, "Free ws")
	proWs := createTestWorkspace(t, app, proToken, "Pro ws")
	grantProPlan(t, proID)

	resp, _ := doJSON(t, app, "POST", "/api/workspaces/"+freeWs+"/banner", freeToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Pro kullanıcı plan kapısını geçer; dosya olmadığı için 400 alır
	resp, _ = doJSON(t, app, "POST", "/api/workspaces/"+proWs+"/banner", proToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProfile_EmptyBodyRejected(t *testing.T) {
	app := setupTestApp(t)
	token, _ := registerUser(t, app, "user@example.com")

	resp, _ := doJSON(t, app, "PUT", "/api/settings/profile", token, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
