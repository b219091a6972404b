package controller

import (
	"errors"
	"log"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/email"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CollaboratorsInput struct {
	UserIDs []string `json:"user_ids" validate:"required"`
}

// AddCollaborators workspace'e üyelik ekler. (workspace, user) çifti unique
// index ile korunur; aynı kullanıcı ikinci kez eklenirse o kayıt atlanır.
func AddCollaborators(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	input := new(CollaboratorsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.UserIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No users provided",
		})
	}

	var workspace model.Workspace
	if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	added := []model.Collaborator{}
	skipped := []string{}

	for _, userID := range input.UserIDs {
		var user model.User
		if err := database.GetDB().First(&user, "id = ?", userID).Error; err != nil {
			skipped = append(skipped, userID)
			continue
		}

		// Sahip zaten erişime sahip, collaborator olarak eklenmez
		if workspace.WorkspaceOwner == userID {
			skipped = append(skipped, userID)
			continue
		}

		// Oturum üzerinden: local state optimistic güncellenir, üyelik
		// kalıcılaşır
		collaborator, err := editSession.AddCollaborator(workspaceID, user)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped = append(skipped, userID)
				continue
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not add collaborator",
			})
		}

		added = append(added, collaborator)

		if email.GlobalEmailService != nil {
			if err := email.GlobalEmailService.SendCollaboratorAddedEmail(user.Email, user.FullName, workspace.Title); err != nil {
				log.Printf("Could not send collaborator email to %s: %v", user.Email, err)
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Collaborators updated",
		"added":   added,
		"skipped": skipped,
	})
}

// RemoveCollaborators üyeliği kullanıcı id eşleşmesiyle kaldırır.
func RemoveCollaborators(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	input := new(CollaboratorsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.UserIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No users provided",
		})
	}

	var removed int64
	for _, userID := range input.UserIDs {
		rows, err := editSession.RemoveCollaborator(workspaceID, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not remove collaborators",
			})
		}
		removed += rows
	}

	return c.JSON(fiber.Map{
		"message": "Collaborators removed",
		"removed": removed,
	})
}

func ListCollaborators(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	var collaborators []model.Collaborator
	if err := database.GetDB().
		Where("workspace_id = ?", workspaceID).
		Order("created_at").
		Find(&collaborators).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch collaborators",
		})
	}

	return c.JSON(collaborators)
}

// SearchUsers collaborator seçici için email prefix araması yapar.
func SearchUsers(c *fiber.Ctx) error {
	queryStr := c.Query("email")
	if queryStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email query is required",
		})
	}

	var users []model.User
	if err := database.GetDB().
		Where("email LIKE ?", queryStr+"%").
		Limit(10).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not search users",
		})
	}

	results := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		results = append(results, users[i].GetPublicProfile())
	}

	return c.JSON(results)
}
