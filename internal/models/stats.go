package models

import "time"

// StatsRowID is the fixed primary key of the singleton stats row.
const StatsRowID uint = 1

// Stats is a denormalized aggregate kept in sync with salon lifecycle
// events. Counters are only ever touched through atomic column deltas.
type Stats struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TotalSalons         int64 `gorm:"default:0" json:"total_salons"`
	SampleSites         int64 `gorm:"default:0" json:"sample_sites"`
	PendingContacts     int64 `gorm:"default:0" json:"pending_contacts"`
	ActiveSubscriptions int64 `gorm:"default:0" json:"active_subscriptions"`

	UpdatedAt time.Time `json:"updated_at"`
}
