package models

import (
	"time"

	"gorm.io/datatypes"
)

// Template is read-mostly styling metadata; it never owns a salon.
type Template struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	PreviewImageURL string `gorm:"size:500" json:"preview_image_url"`

	PrimaryColor    string `gorm:"size:7" json:"primary_color"`
	SecondaryColor  string `gorm:"size:7" json:"secondary_color"`
	FontFamily      string `gorm:"size:50" json:"font_family"`
	BackgroundColor string `gorm:"size:7" json:"background_color"`
	TextColor       string `gorm:"size:7" json:"text_color"`

	DefaultCoverImageURL string `gorm:"size:255" json:"default_cover_image_url"`
	DefaultAboutImageURL string `gorm:"size:255" json:"default_about_image_url"`

	Features          datatypes.JSON `gorm:"type:jsonb" json:"features"`
	IsMobileOptimized bool           `gorm:"default:true" json:"is_mobile_optimized"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
