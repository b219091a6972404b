package controller

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/subscription"
	"github.com/stripe/stripe-go/v74/webhook"

	"cypress_backend/internal/model"
	"cypress_backend/pkg/config"
	"cypress_backend/pkg/database"
	"cypress_backend/pkg/utils/jwt"
)

type CheckoutInput struct {
	PriceID string `json:"price_id" validate:"required"`
}

var stripeWebhookSecret string

func InitBillingController(cfg *config.Config) {
	stripe.Key = cfg.Stripe.SecretKey
	stripeWebhookSecret = cfg.Stripe.WebhookSecret
}

// ListProducts aktif ürünleri fiyatlarıyla birlikte döner.
func ListProducts(c *fiber.Ctx) error {
	var products []model.Product
	if err := database.DB.Where("active = ?", true).
		Preload("Prices", "active = ?", true).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch products",
		})
	}

	return c.JSON(products)
}

func GetMySubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	if err := database.DB.Where("user_id = ? AND status IN ?", claims.UserID,
		[]model.SubscriptionStatus{model.SubscriptionStatusActive, model.SubscriptionStatusTrialing}).
		Preload("Price").First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active subscription found",
		})
	}

	return c.JSON(sub)
}

// getOrCreateCustomer kullanıcının Stripe customer kaydını döner, yoksa
// oluşturup saklar.
func getOrCreateCustomer(user *model.User) (string, error) {
	var cust model.Customer
	if err := database.DB.First(&cust, "user_id = ?", user.ID).Error; err == nil {
		return cust.StripeCustomerID, nil
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.FullName),
	}
	customerParams.AddMetadata("user_id", user.ID)

	stripeCustomer, err := customer.New(customerParams)
	if err != nil {
		return "", err
	}

	cust = model.Customer{
		UserID:           user.ID,
		StripeCustomerID: stripeCustomer.ID,
	}
	if err := database.DB.Create(&cust).Error; err != nil {
		return "", err
	}

	return stripeCustomer.ID, nil
}

func CreateCheckoutSession(c *fiber.Ctx) error {
	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	claims := c.Locals("user").(*jwt.Claims)

	var price model.Price
	if err := database.DB.First(&price, "id = ?", input.PriceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Price not found",
		})
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	customerID, err := getOrCreateCustomer(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create Stripe customer",
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(price.ID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(siteURL + "billing/payment-success"),
		CancelURL:  stripe.String(siteURL + "billing/payment-cancelled"),
	}

	checkoutSession, err := session.New(sessionParams)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	return c.JSON(fiber.Map{
		"session_id": checkoutSession.ID,
		"url":        checkoutSession.URL,
	})
}

func CancelSubscription(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var sub model.Subscription
	if err := database.DB.Where("user_id = ? AND status IN ?", claims.UserID,
		[]model.SubscriptionStatus{model.SubscriptionStatusActive, model.SubscriptionStatusTrialing}).
		First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No active subscription found",
		})
	}

	if _, err := subscription.Cancel(sub.ID, nil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not cancel Stripe subscription",
		})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      model.SubscriptionStatusCanceled,
		"canceled_at": &now,
		"ended_at":    &now,
	}
	if err := database.DB.Model(&sub).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subscription status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Subscription cancelled successfully",
	})
}

// HandleStripeWebhook katalog ve abonelik tablolarını Stripe'tan gelen
// event'lerle senkron tutar.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, stripeWebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	log.Printf("Processing Stripe webhook event: %s", event.Type)

	switch event.Type {
	case "product.created", "product.updated":
		var p stripe.Product
		if err := json.Unmarshal(event.Data.Raw, &p); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		if err := upsertProduct(&p); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save product",
			})
		}

	case "price.created", "price.updated":
		var p stripe.Price
		if err := json.Unmarshal(event.Data.Raw, &p); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		if err := upsertPrice(&p); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save price",
			})
		}

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var s stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return c.Status(fiber.StatusBadRequest).Send(nil)
		}
		if err := upsertSubscription(&s); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not save subscription",
			})
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

func upsertProduct(p *stripe.Product) error {
	product := model.Product{
		ID:          p.ID,
		Active:      p.Active,
		Name:        p.Name,
		Description: p.Description,
	}
	if len(p.Images) > 0 {
		product.Image = p.Images[0]
	}

	var existing model.Product
	if err := database.DB.First(&existing, "id = ?", p.ID).Error; err != nil {
		return database.DB.Create(&product).Error
	}
	return database.DB.Model(&existing).Updates(map[string]interface{}{
		"active":      product.Active,
		"name":        product.Name,
		"description": product.Description,
		"image":       product.Image,
	}).Error
}

func upsertPrice(p *stripe.Price) error {
	price := model.Price{
		ID:         p.ID,
		Active:     p.Active,
		Currency:   string(p.Currency),
		UnitAmount: p.UnitAmount,
		Type:       model.PricingType(p.Type),
	}
	if p.Product != nil {
		price.ProductID = p.Product.ID
	}
	if p.Recurring != nil {
		price.Interval = model.PricingPlanInterval(p.Recurring.Interval)
		price.IntervalCount = int(p.Recurring.IntervalCount)
		price.TrialPeriodDays = int(p.Recurring.TrialPeriodDays)
	}

	var existing model.Price
	if err := database.DB.First(&existing, "id = ?", p.ID).Error; err != nil {
		return database.DB.Create(&price).Error
	}
	return database.DB.Model(&existing).Updates(map[string]interface{}{
		"active":            price.Active,
		"product_id":        price.ProductID,
		"currency":          price.Currency,
		"unit_amount":       price.UnitAmount,
		"type":              price.Type,
		"interval":          price.Interval,
		"interval_count":    price.IntervalCount,
		"trial_period_days": price.TrialPeriodDays,
	}).Error
}

func unixTime(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0)
	return &t
}

func upsertSubscription(s *stripe.Subscription) error {
	if s.Customer == nil {
		return nil
	}

	// Customer id üzerinden kullanıcıyı bul
	var cust model.Customer
	if err := database.DB.First(&cust, "stripe_customer_id = ?", s.Customer.ID).Error; err != nil {
		log.Printf("No local customer for Stripe customer %s, skipping", s.Customer.ID)
		return nil
	}

	sub := model.Subscription{
		ID:                 s.ID,
		UserID:             cust.UserID,
		Status:             model.SubscriptionStatus(s.Status),
		Quantity:           1,
		CancelAtPeriodEnd:  s.CancelAtPeriodEnd,
		Created:            time.Unix(s.Created, 0),
		CurrentPeriodStart: time.Unix(s.CurrentPeriodStart, 0),
		CurrentPeriodEnd:   time.Unix(s.CurrentPeriodEnd, 0),
		EndedAt:            unixTime(s.EndedAt),
		CancelAt:           unixTime(s.CancelAt),
		CanceledAt:         unixTime(s.CanceledAt),
		TrialStart:         unixTime(s.TrialStart),
		TrialEnd:           unixTime(s.TrialEnd),
	}
	if s.Items != nil && len(s.Items.Data) > 0 {
		item := s.Items.Data[0]
		if item.Price != nil {
			sub.PriceID = item.Price.ID
		}
		sub.Quantity = int(item.Quantity)
	}

	var existing model.Subscription
	if err := database.DB.First(&existing, "id = ?", s.ID).Error; err != nil {
		return database.DB.Create(&sub).Error
	}
	return database.DB.Model(&existing).Updates(map[string]interface{}{
		"status":               sub.Status,
		"price_id":             sub.PriceID,
		"quantity":             sub.Quantity,
		"cancel_at_period_end": sub.CancelAtPeriodEnd,
		"current_period_start": sub.CurrentPeriodStart,
		"current_period_end":   sub.CurrentPeriodEnd,
		"ended_at":             sub.EndedAt,
		"cancel_at":            sub.CancelAt,
		"canceled_at":          sub.CanceledAt,
		"trial_start":          sub.TrialStart,
		"trial_end":            sub.TrialEnd,
	}).Error
}
