package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	FullName       string         `json:"full_name"`
	AvatarURL      string         `json:"avatar_url"`
	BillingAddress datatypes.JSON `json:"billing_address"`
	PaymentMethod  datatypes.JSON `json:"payment_method"`
	IsVerified     bool           `json:"is_verified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// İlişkiler
	Workspaces    []Workspace    `json:"-" gorm:"foreignKey:WorkspaceOwner"`
	Subscriptions []Subscription `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"full_name":   u.FullName,
		"avatar_url":  u.AvatarURL,
		"is_verified": u.IsVerified,
	}
}

// Customer is the Stripe-side counterpart of a User. Created lazily on the
// first billing interaction.
type Customer struct {
	UserID           string `json:"user_id" gorm:"type:uuid;primaryKey"`
	StripeCustomerID string `json:"stripe_customer_id" gorm:"uniqueIndex"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
