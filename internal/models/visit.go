package models

import "time"

// Visit is one tracked page view. Rows are written asynchronously by the
// tracking middleware and aggregated by the report queries.
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Path      string `gorm:"size:500;index;not null" json:"path"`
	IPAddress string `gorm:"size:45;index" json:"ip_address"`
	SessionID string `gorm:"size:36;index" json:"session_id"`

	UserID *uint `gorm:"index" json:"user_id"`

	UserAgent string `gorm:"size:500" json:"user_agent"`
	Referer   string `gorm:"size:500" json:"referer"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
