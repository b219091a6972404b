package model

import (
	"time"

	"gorm.io/datatypes"
)

// Subscription Status
type SubscriptionStatus string

const (
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
)

// Pricing Types
type PricingType string

const (
	PricingTypeOneTime   PricingType = "one_time"
	PricingTypeRecurring PricingType = "recurring"
)

// Pricing Plan Intervals
type PricingPlanInterval string

const (
	PricingPlanIntervalDay   PricingPlanInterval = "day"
	PricingPlanIntervalWeek  PricingPlanInterval = "week"
	PricingPlanIntervalMonth PricingPlanInterval = "month"
	PricingPlanIntervalYear  PricingPlanInterval = "year"
)

// Product ve Price Stripe kataloğunun aynasıdır; webhook'lar tarafından
// doldurulur.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Active      bool           `json:"active" gorm:"default:true"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Metadata    datatypes.JSON `json:"metadata"`

	// İlişkiler
	Prices []Price `json:"prices" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Price struct {
	ID              string              `json:"id" gorm:"primaryKey"`
	ProductID       string              `json:"product_id" gorm:"index"`
	Active          bool                `json:"active" gorm:"default:true"`
	Description     string              `json:"description"`
	UnitAmount      int64               `json:"unit_amount"`
	Currency        string              `json:"currency"`
	Type            PricingType         `json:"type"`
	Interval        PricingPlanInterval `json:"interval"`
	IntervalCount   int                 `json:"interval_count"`
	TrialPeriodDays int                 `json:"trial_period_days"`
	Metadata        datatypes.JSON      `json:"metadata"`

	// İlişkiler
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

type Subscription struct {
	ID                 string             `json:"id" gorm:"primaryKey"`
	UserID             string             `json:"user_id" gorm:"type:uuid;not null;index"`
	Status             SubscriptionStatus `json:"status"`
	PriceID            string             `json:"price_id" gorm:"index"`
	Quantity           int                `json:"quantity"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	Metadata           datatypes.JSON     `json:"metadata"`
	Created            time.Time          `json:"created"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	EndedAt            *time.Time         `json:"ended_at"`
	CancelAt           *time.Time         `json:"cancel_at"`
	CanceledAt         *time.Time         `json:"canceled_at"`
	TrialStart         *time.Time         `json:"trial_start"`
	TrialEnd           *time.Time         `json:"trial_end"`

	// İlişkiler
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Price Price `json:"price" gorm:"foreignKey:PriceID"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}
