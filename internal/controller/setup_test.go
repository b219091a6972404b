package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cypress_backend/internal/middleware"
	"cypress_backend/internal/model"
	"cypress_backend/pkg/config"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/plan"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// setupTestApp in-memory sqlite üzerinde route'ları main ile aynı şekilde
// kurar. Controller'lar global DB kullandığı için testler paralel koşmaz.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	database.Open(sqlite.Open(dsn))

	require.NoError(t, database.MigrateDatabase(
		&model.User{},
		&model.Customer{},
		&model.Workspace{},
		&model.Folder{},
		&model.File{},
		&model.Collaborator{},
		&model.Product{},
		&model.Price{},
		&model.Subscription{},
	))

	InitAuthController(config.Load())
	InitWorkspaceController()

	app := fiber.New()

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", Register)
	auth.Post("/login", Login)
	auth.Get("/callback", VerifyEmail)

	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", GetMe)
	protected.Get("/users/search", SearchUsers)

	workspaces := protected.Group("/workspaces")
	workspaces.Post("/", CreateWorkspace)
	workspaces.Get("/my", ListMyWorkspaces)
	workspaces.Get("/:workspace_id", middleware.CheckWorkspaceAccess(), GetWorkspace)
	workspaces.Put("/:workspace_id", middleware.CheckWorkspaceAccess(), UpdateWorkspace)
	workspaces.Put("/:workspace_id/title", middleware.CheckWorkspaceAccess(), RenameWorkspace)
	workspaces.Put("/:workspace_id/trash", middleware.CheckWorkspaceOwnership(), TrashWorkspace)
	workspaces.Put("/:workspace_id/restore", middleware.CheckWorkspaceOwnership(), RestoreWorkspace)
	workspaces.Delete("/:workspace_id", middleware.CheckWorkspaceOwnership(), DeleteWorkspace)
	workspaces.Post("/:workspace_id/banner", middleware.CheckWorkspaceAccess(), middleware.CheckFeatureAccess(plan.CustomBanners), UploadWorkspaceBanner)

	workspaces.Get("/:workspace_id/collaborators", middleware.CheckWorkspaceAccess(), ListCollaborators)
	workspaces.Post("/:workspace_id/collaborators", middleware.CheckWorkspaceOwnership(), AddCollaborators)
	workspaces.Delete("/:workspace_id/collaborators", middleware.CheckWorkspaceOwnership(), RemoveCollaborators)

	workspaces.Post("/:workspace_id/folders", middleware.CheckWorkspaceAccess(), middleware.CheckFolderLimit(), CreateFolder)
	workspaces.Get("/:workspace_id/folders", middleware.CheckWorkspaceAccess(), ListFolders)

	folders := protected.Group("/folders")
	folders.Put("/:folder_id", middleware.CheckFolderAccess(), UpdateFolder)
	folders.Put("/:folder_id/trash", middleware.CheckFolderAccess(), TrashFolder)
	folders.Put("/:folder_id/restore", middleware.CheckFolderAccess(), RestoreFolder)
	folders.Delete("/:folder_id", middleware.CheckFolderAccess(), DeleteFolder)

	workspaces.Post("/:workspace_id/files", middleware.CheckWorkspaceAccess(), CreateFile)
	workspaces.Get("/:workspace_id/files", middleware.CheckWorkspaceAccess(), ListFiles)

	settings := protected.Group("/settings")
	settings.Get("/profile", GetProfile)
	settings.Put("/profile", UpdateProfile)

	files := protected.Group("/files")
	files.Get("/:file_id", middleware.CheckFileAccess(), GetFile)
	files.Put("/:file_id", middleware.CheckFileAccess(), UpdateFile)
	files.Put("/:file_id/move", middleware.CheckFileAccess(), MoveFile)
	files.Put("/:file_id/trash", middleware.CheckFileAccess(), TrashFile)
	files.Put("/:file_id/restore", middleware.CheckFileAccess(), RestoreFile)
	files.Delete("/:file_id", middleware.CheckFileAccess(), DeleteFile)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
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

	var decoded map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}

	return resp, decoded
}

// registerUser test kullanıcısı oluşturur ve token ile id döner.
func registerUser(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"email":     email,
		"password":  "secret123",
		"full_name": "Test User",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	token := body["token"].(string)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

// grantProPlan kullanıcıya aktif bir abonelik yazar; plan kontrolleri Pro
// sayar.
func grantProPlan(t *testing.T, userID string) {
	t.Helper()

	db := database.GetDB()
	require.NoError(t, db.FirstOrCreate(&model.Product{ID: "prod_test", Name: "Pro Plan"}).Error)
	require.NoError(t, db.FirstOrCreate(&model.Price{ID: "price_test", ProductID: "prod_test", Currency: "usd"}).Error)
	require.NoError(t, db.Create(&model.Subscription{
		ID:                 "sub_" + userID,
		UserID:             userID,
		Status:             model.SubscriptionStatusActive,
		PriceID:            "price_test",
		CurrentPeriodStart: time.Now(),
	}).Error)
}

func createTestWorkspace(t *testing.T, app *fiber.App, token, title string) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/workspaces", token, map[string]string{
		"title": title,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	ws := body["workspace"].(map[string]interface{})
	return ws["id"].(string)
}
