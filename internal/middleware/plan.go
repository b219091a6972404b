package middleware

import (
	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/plan"
	"cypress_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
)

// PlanFor kullanıcının aktif aboneliğine göre plan tipini belirler.
// Aktif veya trial abonelik Pro sayılır, gerisi Free.
func PlanFor(userID string) plan.PlanType {
	var sub model.Subscription
	err := database.DB.Where("user_id = ? AND status IN ?", userID,
		[]model.SubscriptionStatus{model.SubscriptionStatusActive, model.SubscriptionStatusTrialing}).
		First(&sub).Error
	if err == nil {
		return plan.ProPlan
	}
	return plan.FreePlan
}

// CheckFolderLimit workspace başına klasör limitini kontrol eder.
func CheckFolderLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		workspaceID := c.Params("workspace_id")

		limits := plan.GetPlanLimits(PlanFor(claims.UserID))

		var folderCount int64
		database.DB.Model(&model.Folder{}).
			Where("workspace_id = ? AND in_trash = ?", workspaceID, false).
			Count(&folderCount)

		if int(folderCount) >= limits.MaxFoldersPerWorkspace {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "You have reached your folder limit. Please upgrade your plan.",
				"current_count": folderCount,
				"max_limit":     limits.MaxFoldersPerWorkspace,
			})
		}

		return c.Next()
	}
}

// CheckFeatureAccess bir özelliğin mevcut plana açık olup olmadığını
// kontrol eder.
func CheckFeatureAccess(feature plan.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		if !plan.CanUseFeature(PlanFor(claims.UserID), feature) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This feature requires a higher subscription plan",
			})
		}

		return c.Next()
	}
}
