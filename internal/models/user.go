package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone_number"`
	Role         string `gorm:"size:10;default:'user'" json:"role"`

	// Profile-side convenience link to a salon. This is distinct from
	// Salon.OwnerID, which only the claim workflow writes.
	SalonID *uint  `json:"salon_id"`
	Salon   *Salon `gorm:"foreignKey:SalonID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon,omitempty"`

	StripeCustomerID     string `gorm:"size:255" json:"-"`
	StripeSubscriptionID string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
