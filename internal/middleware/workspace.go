package middleware

import (
	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
)

// CheckWorkspaceOwnership sadece workspace sahibine izin verir. Silme ve
// collaborator yönetimi gibi işlemler için kullanılır.
func CheckWorkspaceOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		workspaceID := c.Params("workspace_id")

		var workspace model.Workspace
		if err := database.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Workspace not found",
			})
		}

		if workspace.WorkspaceOwner != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to manage this workspace",
			})
		}

		return c.Next()
	}
}

// CheckWorkspaceAccess sahibe veya collaborator'a izin verir. Okuma ve
// içerik düzenleme işlemleri için kullanılır.
func CheckWorkspaceAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID := c.Params("workspace_id")

		var workspace model.Workspace
		if err := database.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Workspace not found",
			})
		}

		return requireWorkspaceAccess(c, &workspace)
	}
}

// CheckFolderAccess :folder_id parametresindeki klasörün workspace'ini
// çözer ve sahip-veya-collaborator kontrolünü uygular.
func CheckFolderAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var folder model.Folder
		if err := database.DB.First(&folder, "id = ?", c.Params("folder_id")).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Folder not found",
			})
		}

		var workspace model.Workspace
		if err := database.DB.First(&workspace, "id = ?", folder.WorkspaceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Workspace not found",
			})
		}

		return requireWorkspaceAccess(c, &workspace)
	}
}

// CheckFileAccess :file_id parametresindeki dosyanın workspace'ini çözer
// ve sahip-veya-collaborator kontrolünü uygular.
func CheckFileAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var file model.File
		if err := database.DB.First(&file, "id = ?", c.Params("file_id")).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "File not found",
			})
		}

		var workspace model.Workspace
		if err := database.DB.First(&workspace, "id = ?", file.WorkspaceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Workspace not found",
			})
		}

		return requireWorkspaceAccess(c, &workspace)
	}
}

func requireWorkspaceAccess(c *fiber.Ctx, workspace *model.Workspace) error {
	claims := c.Locals("user").(*jwt.Claims)

	if workspace.WorkspaceOwner == claims.UserID {
		return c.Next()
	}

	var count int64
	database.DB.Model(&model.Collaborator{}).
		Where("workspace_id = ? AND user_id = ?", workspace.ID, claims.UserID).
		Count(&count)

	if count == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have access to this workspace",
		})
	}

	return c.Next()
}
