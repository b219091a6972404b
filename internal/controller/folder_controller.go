package controller

import (
	"time"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"

	"github.com/gofiber/fiber/v2"
)

type CreateFolderInput struct {
	Title  string `json:"title" validate:"required"`
	IconID string `json:"icon_id"`
	Data   string `json:"data"`
}

func CreateFolder(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	input := new(CreateFolderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	folder := model.Folder{
		WorkspaceID: workspaceID,
		Title:       input.Title,
		IconID:      input.IconID,
		Data:        input.Data,
	}
	if folder.IconID == "" {
		folder.IconID = "📁"
	}

	if err := database.GetDB().Create(&folder).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create folder",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Folder created successfully",
		"folder":  folder,
	})
}

func ListFolders(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	var folders []model.Folder
	if err := database.GetDB().
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&folders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch folders",
		})
	}

	return c.JSON(folders)
}

func UpdateFolder(c *fiber.Ctx) error {
	folderID := c.Params("folder_id")

	patch := new(NodePatch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := patch.Updates()
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if bannerLocked(c, patch) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Custom banners require a higher subscription plan",
		})
	}

	var folder model.Folder
	if err := database.GetDB().First(&folder, "id = ?", folderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Folder not found",
		})
	}

	if err := database.GetDB().Model(&folder).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update folder",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Folder updated successfully",
		"folder":  folder,
	})
}

func TrashFolder(c *fiber.Ctx) error {
	return setFolderTrash(c, true)
}

func RestoreFolder(c *fiber.Ctx) error {
	return setFolderTrash(c, false)
}

func setFolderTrash(c *fiber.Ctx, inTrash bool) error {
	folderID := c.Params("folder_id")

	updates := map[string]interface{}{"in_trash": inTrash, "trashed_at": nil}
	if inTrash {
		now := time.Now()
		updates["trashed_at"] = &now
	}

	result := database.GetDB().Model(&model.Folder{}).
		Where("id = ?", folderID).
		Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update folder",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Folder not found",
		})
	}

	message := "Folder moved to trash"
	if !inTrash {
		message = "Folder restored"
	}
	return c.JSON(fiber.Map{"message": message})
}

// DeleteFolder klasörü kalıcı olarak siler; içindeki dosyalar cascade ile
// birlikte gider.
func DeleteFolder(c *fiber.Ctx) error {
	folderID := c.Params("folder_id")

	result := database.GetDB().Delete(&model.Folder{}, "id = ?", folderID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete folder",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Folder not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Folder deleted successfully",
	})
}
