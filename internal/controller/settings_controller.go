package controller

import (
	"fmt"
	"log"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/utils/jwt"
	"cypress_backend/pkg/utils/storage"
	"cypress_backend/pkg/utils/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type ProfileUpdateInput struct {
	FullName       *string         `json:"full_name"`
	BillingAddress *datatypes.JSON `json:"billing_address"`
	PaymentMethod  *datatypes.JSON `json:"payment_method"`
}

func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProfileUpdateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.BillingAddress != nil {
		updates["billing_address"] = *input.BillingAddress
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.GetPublicProfile(),
	})
}

// UploadAvatar profil fotoğrafını yükler, public URL'i kullanıcı kaydına
// yazar. Hata durumu sessizce yutulmaz, yanıt olarak döner.
func UploadAvatar(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No avatar image provided",
		})
	}

	if err := validation.ValidateImage(file, 0); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Eğer eski avatar varsa, sil
	if user.AvatarURL != "" {
		if err := storage.Delete(storage.AvatarBucket, user.AvatarURL); err != nil {
			// Hata logla ama işleme devam et
			log.Printf("Error deleting old avatar: %v", err)
		}
	}

	key := storage.NewObjectKey("userAvatar")
	path, err := storage.Upload(storage.AvatarBucket, key, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Could not upload avatar: %v", err),
		})
	}

	avatarURL := storage.PublicURL(storage.AvatarBucket, path)

	// Veritabanını güncelle
	if err := database.GetDB().Model(&user).Update("avatar_url", avatarURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update avatar",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Avatar uploaded successfully",
		"avatar_url": avatarURL,
	})
}

// UploadWorkspaceLogo logoyu yükler ve storage path'ini workspace'in LOGO
// alanına yazar.
func UploadWorkspaceLogo(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	var workspace model.Workspace
	if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No logo image provided",
		})
	}

	if err := validation.ValidateImage(file, 0); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if workspace.Logo != "" {
		if err := storage.Delete(storage.LogoBucket, workspace.Logo); err != nil {
			log.Printf("Error deleting old workspace logo: %v", err)
		}
	}

	key := storage.NewObjectKey("workspaceLogo")
	path, err := storage.Upload(storage.LogoBucket, key, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Could not upload logo: %v", err),
		})
	}

	if err := database.GetDB().Model(&workspace).Update("logo", path).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update workspace logo",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Workspace logo uploaded successfully",
		"logo":    path,
	})
}

// UploadWorkspaceBanner banner görselini yükler ve public URL'ini
// workspace'e yazar. Route Pro plan kontrolünden geçer.
func UploadWorkspaceBanner(c *fiber.Ctx) error {
	workspaceID := c.Params("workspace_id")

	var workspace model.Workspace
	if err := database.GetDB().First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Workspace not found",
		})
	}

	file, err := c.FormFile("banner")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No banner image provided",
		})
	}

	if err := validation.ValidateImage(file, 0); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if workspace.BannerURL != "" {
		if err := storage.Delete(storage.BannerBucket, workspace.BannerURL); err != nil {
			log.Printf("Error deleting old workspace banner: %v", err)
		}
	}

	key := storage.NewObjectKey("banner")
	path, err := storage.Upload(storage.BannerBucket, key, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Could not upload banner: %v", err),
		})
	}

	bannerURL := storage.PublicURL(storage.BannerBucket, path)
	if err := database.GetDB().Model(&workspace).Update("banner_url", bannerURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update workspace banner",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Workspace banner uploaded successfully",
		"banner_url": bannerURL,
	})
}
