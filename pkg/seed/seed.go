package seed

import (
	"log"

	"cypress_backend/internal/model"

	"gorm.io/gorm"
)

// SeedBillingCatalog geliştirme ortamı için varsayılan ürün/fiyat
// kataloğunu oluşturur. Production'da katalog Stripe webhook'larıyla dolar.
func SeedBillingCatalog(db *gorm.DB) {
	products := []model.Product{
		{
			ID:          "prod_test_pro",
			Active:      true,
			Name:        "Cypress Pro",
			Description: "Unlimited folders, bigger uploads and priority support",
		},
	}

	prices := []model.Price{
		{
			ID:              "price_test_pro_monthly",
			ProductID:       "prod_test_pro",
			Active:          true,
			Description:     "Pro plan, billed monthly",
			UnitAmount:      1250,
			Currency:        "usd",
			Type:            model.PricingTypeRecurring,
			Interval:        model.PricingPlanIntervalMonth,
			IntervalCount:   1,
			TrialPeriodDays: 14,
		},
		{
			ID:            "price_test_pro_yearly",
			ProductID:     "prod_test_pro",
			Active:        true,
			Description:   "Pro plan, billed yearly",
			UnitAmount:    12000,
			Currency:      "usd",
			Type:          model.PricingTypeRecurring,
			Interval:      model.PricingPlanIntervalYear,
			IntervalCount: 1,
		},
	}

	for _, product := range products {
		result := db.FirstOrCreate(&product, model.Product{ID: product.ID})
		if result.Error != nil {
			log.Printf("Error creating product %s: %v", product.Name, result.Error)
		}
	}

	for _, price := range prices {
		result := db.FirstOrCreate(&price, model.Price{ID: price.ID})
		if result.Error != nil {
			log.Printf("Error creating price %s: %v", price.ID, result.Error)
		}
	}

	log.Println("Billing catalog seeded successfully!")
}
