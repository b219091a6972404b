package controller

import (
	"time"

	"cypress_backend/internal/middleware"
	"cypress_backend/internal/model"
	"cypress_backend/internal/session"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/plan"
	"cypress_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
)

// editSession başlık düzenlemelerini coalesce eden paylaşılan oturum.
var editSession *session.Session

func InitWorkspaceController() {
	editSession = session.New(database.GetDB(), session.DefaultDebounceDelay)
}

type CreateWorkspaceInput struct {
	Title  string `json:"title" validate:"required"`
	IconID string `json:"icon_id"`
	Logo   string `json:"logo"`
	Data   string `json:"data"`
}

// NodePatch workspace/folder/file üçlüsünün ortak alanları için kısmi
// güncelleme. Nil alanlar dokunulmadan bırakılır.
type NodePatch struct {
	Title     *string `json:"title"`
	IconID    *string `json:"icon_id"`
	Data      *string `json:"data"`
	Logo      *string `json:"logo"`
	BannerURL *string `json:"banner_url"`
}

func (p *NodePatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.IconID != nil {
		updates["icon_id"] = *p.IconID
	}
	if p.Data != nil {
		updates["data"] = *p.Data
	}
	if p.Logo != nil {
		updates["logo"] = *p.Logo
	}
	if p.BannerURL != nil {
		updates["banner_url"] = *p.BannerURL
	}
	return updates
}

// bannerLocked banner alanını değiştirmek isteyen ama planı izin vermeyen
// istekler için true döner. Banner özelleştirme Pro özelliğidir.
func bannerLocked(c *fiber.Ctx, patch *NodePatch) bool {
	if patch.BannerURL == nil {
		return false
	}
	claims := c.Locals("user").(*jwt.Claims)
	return !plan.CanUseFeature(middleware.PlanFor(claims.UserID), plan.CustomBanners)
}

func CreateWorkspace(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CreateWorkspaceInput)
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

	workspace := model.Workspace{
		WorkspaceOwner: claims.UserID,
		Title:          input.Title,
		IconID:         input.IconID,
		Logo:           input.Logo,
		Data:           input.Data,
	}
	if workspace.IconID == "" {
		workspace.IconID = "💼"
	}

	if err := database.GetDB().Create(&workspace).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create workspace",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Workspace created successfully",
		"workspace": workspace,
	})
}

// ListMyWorkspaces sahip olunan ve collaborator olunan workspace'leri
// birlikte döner.
func ListMyWorkspaces(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var owned []model.Workspace
	if err := database.GetDB().
		Where("workspace_owner = ?", claims.UserID).
		Order("created_at").
		Find(&owned).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch workspaces",
		})
	}

	var shared []model.Workspace
	if err := database.GetDB().
		Joins("JOIN collaborators ON collaborators.workspace_id = workspaces.id").
		Where("collaborators.user_id = ?", claims.UserID).
		Order("workspaces.created_at").
		Find(&shared).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch shared workspaces",
		})
	}

	return c.JSON(fiber.Map{
		"owned":  owned,
		"shared": shared,
	})
}

func GetWorkspace(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	var workspace model.Workspace
	if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	return c.JSON(workspace)
}

func UpdateWorkspace(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

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

	var workspace model.Workspace
	if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	if err := database.GetDB().Model(&workspace).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update workspace",
		})
	}

	return c.JSON(fiber.Map{
		"message":   "Workspace updated successfully",
		"workspace": workspace,
	})
}

type RenameWorkspaceInput struct {
	Title string `json:"title" validate:"required"`
}

// RenameWorkspace tuş vuruşu başına bir istek alan başlık düzenlemeleri
// içindir: local state hemen güncellenir, yazma debounce edilir ve sessiz
// pencere sonunda yalnızca son değer kalıcılaşır.
func RenameWorkspace(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	input := new(RenameWorkspaceInput)
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

	if _, ok := editSession.State().Workspace(workspaceID); !ok {
		var workspace model.Workspace
		if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Workspace not found",
			})
		}
		editSession.LoadWorkspace(workspace)
	}

	editSession.EditTitle(workspaceID, input.Title)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Title update queued",
	})
}

func TrashWorkspace(c *fiber.Ctx) error {
	return setWorkspaceTrash(c, true)
}

func RestoreWorkspace(c *fiber.Ctx) error {
	return setWorkspaceTrash(c, false)
}

func setWorkspaceTrash(c *fiber.Ctx, inTrash bool) error {
	workspaceID := c.Params("workspace_id")

	// Restore'da untyped nil NULL yazar; typed *time.Time nil yazmaz
	updates := map[string]interface{}{"in_trash": inTrash, "trashed_at": nil}
	if inTrash {
		now := time.Now()
		updates["trashed_at"] = &now
	}

	result := database.GetDB().Model(&model.Workspace{}).
		Where("id = ?", workspaceID).
		Updates(updates)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update workspace",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	message := "Workspace moved to trash"
	if !inTrash {
		message = "Workspace restored"
	}
	return c.JSON(fiber.Map{"message": message})
}

// DeleteWorkspace workspace'i kalıcı olarak siler; folder, file ve
// collaborator kayıtları cascade ile birlikte gider. Varlık kontrolü
// ownership middleware'inde yapılır.
func DeleteWorkspace(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	if err := editSession.DeleteWorkspace(workspaceID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete workspace",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Workspace deleted successfully",
	})
}
