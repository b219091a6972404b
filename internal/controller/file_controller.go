package controller

import (
	"time"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"

	"github.com/gofiber/fiber/v2"
)

type CreateFileInput struct {
	Title    string  `json:"title" validate:"required"`
	IconID   string  `json:"icon_id"`
	Data     string  `json:"data"`
	FolderID *string `json:"folder_id"`
}

type MoveFileInput struct {
	FolderID *string `json:"folder_id"`
}

func CreateFile(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	input := new(CreateFileInput)
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

	// Klasör workspace'e ait olmalı
	if input.FolderID != nil {
		var folder model.Folder
		if err := database.GetDB().
			First(&folder, "id = ? AND workspace_id = ?", *input.FolderID, workspaceID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Folder does not belong to this workspace",
			})
		}
	}

	file := model.File{
		WorkspaceID: workspaceID,
		FolderID:    input.FolderID,
		Title:       input.Title,
		IconID:      input.IconID,
		Data:        input.Data,
	}
	if file.IconID == "" {
		file.IconID = "📄"
	}

	if err := database.GetDB().Create(&file).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File created successfully",
		"file":    file,
	})
}

// ListFiles workspace'in dosyalarını listeler; folder_id query parametresi
// verilirse o klasöre göre filtreler.
func ListFiles(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	query := database.GetDB().Where("workspace_id = ?", workspaceID)
	if folderID := c.Query("folder_id"); folderID != "" {
		query = query.Where("folder_id = ?", folderID)
	}

	var files []model.File
	if err := query.Order("created_at").Find(&files).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch files",
		})
	}

	return c.JSON(files)
}

func GetFile(c *fiber.Ctx) error {
	fileID := c.Params("file_id")

	var file model.File
	if err := database.GetDB().First(&file, "id = ?", fileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	return c.JSON(file)
}

func UpdateFile(c *fiber.Ctx) error {
	fileID := c.Params("file_id")

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

	var file model.File
	if err := database.GetDB().First(&file, "id = ?", fileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	if err := database.GetDB().Model(&file).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update file",
		})
	}

	return c.JSON(fiber.Map{
		"message": "File updated successfully",
		"file":    file,
	})
}

// MoveFile dosyayı başka bir klasöre (veya klasörsüz olarak workspace
// köküne) taşır.
func MoveFile(c *fiber.Ctx) error {
	fileID := c.Params("file_id")

	input := new(MoveFileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var file model.File
	if err := database.GetDB().First(&file, "id = ?", fileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	if input.FolderID != nil {
		var folder model.Folder
		if err := database.GetDB().
			First(&folder, "id = ? AND workspace_id = ?", *input.FolderID, file.WorkspaceID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Folder does not belong to this workspace",
			})
		}
	}

	if err := database.GetDB().Model(&file).Update("folder_id", input.FolderID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not move file",
		})
	}

	return c.JSON(fiber.Map{
		"message": "File moved successfully",
		"file":    file,
	})
}

func TrashFile(c *fiber.Ctx) error {
	return setFileTrash(c, true)
}

func RestoreFile(c *fiber.Ctx) error {
	return setFileTrash(c, false)
}

func setFileTrash(c *fiber.Ctx, inTrash bool) error {
	fileID := c.Params("file_id")

	updates := map[string]interface{}{"in_trash": inTrash, "trashed_at": nil}
	if inTrash {
		now := time.Now()
		updates["trashed_at"] = &now
	}

	result := database.GetDB().Model(&model.File{}).
		Where("id = ?", fileID).
		Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update file",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	message := "File moved to trash"
	if !inTrash {
		message = "File restored"
	}
	return c.JSON(fiber.Map{"message": message})
}

func DeleteFile(c *fiber.Ctx) error {
	fileID := c.Params("file_id")

	result := database.GetDB().Delete(&model.File{}, "id = ?", fileID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete file",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "File deleted successfully",
	})
}
