package cron

import (
	"log"
	"time"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/email"

	"github.com/robfig/cron/v3"
)

func InitTrialExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		checkEndingTrials()
	})

	if err != nil {
		log.Printf("Could not initialize trial expiry cron: %v", err)
		return
	}

	c.Start()
}

func checkEndingTrials() {
	log.Println("Checking for ending trials...")

	warningDays := []int{7, 3}

	for _, days := range warningDays {
		var subs []model.Subscription
		windowStart := time.Now().AddDate(0, 0, days)
		windowEnd := windowStart.Add(24 * time.Hour)

		err := database.DB.
			Where("status = ? AND trial_end >= ? AND trial_end < ?",
				model.SubscriptionStatusTrialing, windowStart, windowEnd).
			Preload("User").
			Preload("Price.Product").
			Find(&subs).Error

		if err != nil {
			log.Printf("Error fetching ending trials: %v", err)
			continue
		}

		log.Printf("Found %d trials ending in %d days", len(subs), days)

		for _, sub := range subs {
			if email.GlobalEmailService == nil || sub.TrialEnd == nil {
				continue
			}

			err := email.GlobalEmailService.SendTrialEndingEmail(
				sub.User.Email,
				sub.User.FullName,
				sub.Price.Product.Name,
				*sub.TrialEnd,
				days,
			)
			if err != nil {
				log.Printf("Error sending trial warning to %s: %v", sub.User.Email, err)
			}
		}
	}
}
