package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	PriceCents int64  `gorm:"not null" json:"price_cents"`
	Currency   string `gorm:"size:3;default:'usd'" json:"currency"`

	Features datatypes.JSON `gorm:"type:jsonb" json:"features"`

	StripePriceID    string `gorm:"size:255" json:"stripe_price_id"`
	TrialPeriodDays  int    `gorm:"default:0" json:"trial_period_days"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`
	IsPopular        bool   `gorm:"default:false" json:"is_popular"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
