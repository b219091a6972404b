package cron

import (
	"log"
	"time"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"

	"github.com/robfig/cron/v3"
)

// TrashRetention çöpteki node'ların kalıcı silinmeden önce bekletildiği
// süre.
const TrashRetention = 30 * 24 * time.Hour

func InitTrashPurgeCron() {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		PurgeExpiredTrash()
	})

	if err != nil {
		log.Printf("Could not initialize trash purge cron: %v", err)
		return
	}

	c.Start()
}

// PurgeExpiredTrash bekleme süresi dolmuş çöpteki workspace, folder ve
// file kayıtlarını kalıcı olarak siler. Workspace silinince altındakiler
// cascade ile gider.
func PurgeExpiredTrash() {
	log.Println("Purging expired trash...")

	cutoff := time.Now().Add(-TrashRetention)

	result := database.DB.
		Where("in_trash = ? AND trashed_at < ?", true, cutoff).
		Delete(&model.Workspace{})
	if result.Error != nil {
		log.Printf("Error purging trashed workspaces: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Purged %d trashed workspaces", result.RowsAffected)
	}

	result = database.DB.
		Where("in_trash = ? AND trashed_at < ?", true, cutoff).
		Delete(&model.Folder{})
	if result.Error != nil {
		log.Printf("Error purging trashed folders: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Purged %d trashed folders", result.RowsAffected)
	}

	result = database.DB.
		Where("in_trash = ? AND trashed_at < ?", true, cutoff).
		Delete(&model.File{})
	if result.Error != nil {
		log.Printf("Error purging trashed files: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Purged %d trashed files", result.RowsAffected)
	}
}
